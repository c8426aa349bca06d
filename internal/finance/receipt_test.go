package finance

import (
	"testing"

	"churchadmin-backend/internal/domain"
)

func TestReceiptID(t *testing.T) {
	stored := "RCPT-A-0042"
	empty := ""

	tests := []struct {
		name string
		tx   domain.Transaction
		want string
	}{
		{"stored id wins", domain.Transaction{ID: 7, Type: domain.TransactionExpense, ReceiptID: &stored}, "RCPT-A-0042"},
		{"empty stored id falls back", domain.Transaction{ID: 7, Type: domain.TransactionTithe, ReceiptID: &empty}, "RCPT7"},
		{"expense fallback", domain.Transaction{ID: 12, Type: domain.TransactionExpense}, "EXP12"},
		{"income fallback", domain.Transaction{ID: 12, Type: domain.TransactionOffering}, "RCPT12"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReceiptID(tc.tx); got != tc.want {
				t.Errorf("ReceiptID = %q, want %q", got, tc.want)
			}
		})
	}
}
