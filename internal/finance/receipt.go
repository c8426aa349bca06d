package finance

import (
	"fmt"

	"churchadmin-backend/internal/domain"
)

// ReceiptID returns the stored receipt identifier, or derives one from the
// row id: EXP{id} for expenses, RCPT{id} otherwise. Every export must show
// the same identifier the table does.
func ReceiptID(t domain.Transaction) string {
	if t.ReceiptID != nil && *t.ReceiptID != "" {
		return *t.ReceiptID
	}
	if t.Type == domain.TransactionExpense {
		return fmt.Sprintf("EXP%d", t.ID)
	}
	return fmt.Sprintf("RCPT%d", t.ID)
}
