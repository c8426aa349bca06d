package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/finance"
)

// transactionRow is the wire shape of a transaction inside a NOTIFY payload.
// Field names are normalized to the canonical domain record here, once, at
// the ingestion boundary.
type transactionRow struct {
	ID          int64    `json:"id"`
	Date        string   `json:"tx_date"`
	Contributor string   `json:"contributor"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	ReceiptID   *string  `json:"receipt_id"`
}

type changePayload struct {
	Action string         `json:"action"`
	Row    transactionRow `json:"row"`
}

// DecodeEvent parses a NOTIFY payload into a change event. A missing or
// malformed amount decodes to 0 rather than failing the event.
func DecodeEvent(payload []byte) (finance.ChangeEvent, error) {
	var p changePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return finance.ChangeEvent{}, fmt.Errorf("decode change payload: %w", err)
	}

	var kind finance.ChangeKind
	switch p.Action {
	case "INSERT":
		kind = finance.ChangeInsert
	case "UPDATE":
		kind = finance.ChangeUpdate
	case "DELETE":
		kind = finance.ChangeDelete
	default:
		return finance.ChangeEvent{}, fmt.Errorf("unknown change action %q", p.Action)
	}

	return finance.ChangeEvent{Kind: kind, Row: p.Row.toDomain()}, nil
}

func (r transactionRow) toDomain() domain.Transaction {
	t := domain.Transaction{
		ID:          r.ID,
		Contributor: r.Contributor,
		Type:        domain.TransactionType(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Status:      domain.TransactionStatus(r.Status),
		ReceiptID:   r.ReceiptID,
	}
	if r.Amount != nil {
		t.Amount = *r.Amount
	}
	if d, err := time.Parse("2006-01-02", r.Date); err == nil {
		t.Date = d
	} else if d, err := time.Parse(time.RFC3339, r.Date); err == nil {
		t.Date = d
	}
	if t.Status == "" {
		t.Status = domain.StatusProcessed
	}
	return t
}
