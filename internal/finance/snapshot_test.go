package finance

import (
	"sync"
	"testing"
	"time"

	"churchadmin-backend/internal/domain"
)

func TestSnapshotApplyInsertPrepends(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]domain.Transaction{{ID: 1}})

	s.Apply(ChangeEvent{Kind: ChangeInsert, Row: domain.Transaction{ID: 2}})

	got := s.Transactions()
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("after insert: %v", ids(got))
	}
}

func TestSnapshotApplyUpdateReplacesByID(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]domain.Transaction{{ID: 1, Amount: 10}, {ID: 2, Amount: 20}})

	s.Apply(ChangeEvent{Kind: ChangeUpdate, Row: domain.Transaction{ID: 2, Amount: 99}})

	got := s.Transactions()
	if got[1].Amount != 99 {
		t.Errorf("update did not replace row: %+v", got[1])
	}
	if got[0].Amount != 10 {
		t.Errorf("update touched unrelated row: %+v", got[0])
	}
}

func TestSnapshotApplyDeleteFiltersByID(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]domain.Transaction{{ID: 1}, {ID: 2}, {ID: 3}})

	s.Apply(ChangeEvent{Kind: ChangeDelete, Row: domain.Transaction{ID: 2}})

	if got := ids(s.Transactions()); !equalIDs(got, []int64{1, 3}) {
		t.Errorf("after delete: %v, want [1 3]", got)
	}
}

func TestSnapshotApplyIdempotent(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]domain.Transaction{{ID: 1}})

	t.Run("duplicate insert replaces in place", func(t *testing.T) {
		s.Apply(ChangeEvent{Kind: ChangeInsert, Row: domain.Transaction{ID: 1, Amount: 5}})
		got := s.Transactions()
		if len(got) != 1 || got[0].Amount != 5 {
			t.Errorf("duplicate insert: %v", got)
		}
	})

	t.Run("update for missing id is a no-op", func(t *testing.T) {
		s.Apply(ChangeEvent{Kind: ChangeUpdate, Row: domain.Transaction{ID: 42}})
		if s.Len() != 1 {
			t.Errorf("update of missing id changed size to %d", s.Len())
		}
	})

	t.Run("delete for missing id is a no-op", func(t *testing.T) {
		s.Apply(ChangeEvent{Kind: ChangeDelete, Row: domain.Transaction{ID: 42}})
		s.Apply(ChangeEvent{Kind: ChangeDelete, Row: domain.Transaction{ID: 42}})
		if s.Len() != 1 {
			t.Errorf("delete of missing id changed size to %d", s.Len())
		}
	})
}

func TestSnapshotTransactionsReturnsCopy(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]domain.Transaction{{ID: 1, Amount: 10}})

	got := s.Transactions()
	got[0].Amount = 999

	if s.Transactions()[0].Amount != 10 {
		t.Error("caller mutation leaked into the snapshot")
	}
}

func TestSnapshotConcurrentAccess(t *testing.T) {
	s := NewSnapshot()
	s.Replace([]domain.Transaction{{ID: 1}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		id := int64(i + 2)
		go func() {
			defer wg.Done()
			s.Apply(ChangeEvent{Kind: ChangeInsert, Row: domain.Transaction{ID: id}})
		}()
		go func() {
			defer wg.Done()
			_ = s.Stats(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
		}()
	}
	wg.Wait()

	if s.Len() != 51 {
		t.Errorf("size = %d, want 51", s.Len())
	}
}
