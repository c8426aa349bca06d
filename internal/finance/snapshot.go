package finance

import (
	"sync"
	"time"

	"churchadmin-backend/internal/domain"
)

type ChangeKind string

const (
	ChangeInsert ChangeKind = "INSERT"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

// ChangeEvent is one row-level change observed from the transaction store.
type ChangeEvent struct {
	Kind ChangeKind
	Row  domain.Transaction
}

// Snapshot owns the local copy of the transaction collection. It is seeded by
// a full fetch and kept fresh by applying change events. All accessors return
// copies; callers never share the underlying slice.
type Snapshot struct {
	mu  sync.RWMutex
	txs []domain.Transaction
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Replace swaps in a freshly fetched collection.
func (s *Snapshot) Replace(txs []domain.Transaction) {
	cp := make([]domain.Transaction, len(txs))
	copy(cp, txs)
	s.mu.Lock()
	s.txs = cp
	s.mu.Unlock()
}

// Apply patches the collection with one change event. Handlers are idempotent
// against duplicate or out-of-order delivery: inserting an id that already
// exists replaces it in place, and updating or deleting a missing id is a
// no-op.
func (s *Snapshot) Apply(ev ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Kind {
	case ChangeInsert:
		for i, t := range s.txs {
			if t.ID == ev.Row.ID {
				s.txs[i] = ev.Row
				return
			}
		}
		s.txs = append([]domain.Transaction{ev.Row}, s.txs...)
	case ChangeUpdate:
		for i, t := range s.txs {
			if t.ID == ev.Row.ID {
				s.txs[i] = ev.Row
				return
			}
		}
	case ChangeDelete:
		for i, t := range s.txs {
			if t.ID == ev.Row.ID {
				s.txs = append(s.txs[:i], s.txs[i+1:]...)
				return
			}
		}
	}
}

// Transactions returns a copy of the current collection.
func (s *Snapshot) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]domain.Transaction, len(s.txs))
	copy(cp, s.txs)
	return cp
}

// Len reports the current collection size.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txs)
}

// Stats runs a full recompute over the current collection.
func (s *Snapshot) Stats(ref time.Time) Stats {
	return Summarize(s.Transactions(), ref)
}
