package realtime

import (
	"testing"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/finance"
)

func TestDecodeEvent(t *testing.T) {
	payload := []byte(`{
		"action": "INSERT",
		"row": {
			"id": 12,
			"tx_date": "2026-01-15",
			"contributor": "Ama Mensah",
			"type": "Tithe",
			"category": "General",
			"amount": 250.50,
			"description": "January tithe",
			"status": "Processed"
		}
	}`)

	ev, err := DecodeEvent(payload)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev.Kind != finance.ChangeInsert {
		t.Errorf("Kind = %s, want INSERT", ev.Kind)
	}
	if ev.Row.ID != 12 || ev.Row.Amount != 250.50 || ev.Row.Type != domain.TransactionTithe {
		t.Errorf("Row = %+v", ev.Row)
	}
	want := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !ev.Row.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", ev.Row.Date, want)
	}
}

func TestDecodeEventDefaults(t *testing.T) {
	payload := []byte(`{"action":"UPDATE","row":{"id":3,"type":"Expense","tx_date":"2026-02-01"}}`)

	ev, err := DecodeEvent(payload)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev.Row.Amount != 0 {
		t.Errorf("missing amount = %v, want 0", ev.Row.Amount)
	}
	if ev.Row.Status != domain.StatusProcessed {
		t.Errorf("missing status = %q, want Processed", ev.Row.Status)
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":       "not-json",
		"unknown action": `{"action":"TRUNCATE","row":{"id":1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeEvent([]byte(payload)); err == nil {
				t.Error("DecodeEvent should fail")
			}
		})
	}
}

func TestDecodeEventDeleteFeedsSnapshot(t *testing.T) {
	s := finance.NewSnapshot()
	s.Replace([]domain.Transaction{{ID: 5}, {ID: 6}})

	ev, err := DecodeEvent([]byte(`{"action":"DELETE","row":{"id":5,"tx_date":"2026-01-01"}}`))
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	s.Apply(ev)

	if s.Len() != 1 {
		t.Errorf("snapshot size = %d, want 1", s.Len())
	}
}
