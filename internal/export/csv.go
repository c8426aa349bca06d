package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/finance"
)

const dateLayout = "2006-01-02"

// historyHeader is the fixed column order shared by the CSV and XLSX exports.
var historyHeader = []string{"Date", "Contributor", "Amount", "Type", "Category", "Status", "Receipt ID"}

// TransactionsCSV writes the filtered set, one row per transaction, in the
// fixed column order. Receipt identifiers use the same derivation the table
// displays.
func TransactionsCSV(txs []domain.Transaction) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(historyHeader)
	for _, t := range txs {
		_ = w.Write([]string{
			t.Date.Format(dateLayout),
			t.Contributor,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			string(t.Type),
			t.Category,
			string(t.Status),
			finance.ReceiptID(t),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ParseTransactionsCSV reads rows previously produced by TransactionsCSV back
// into transactions. Row ids are not part of the format; the derived receipt
// id is kept as the stored identifier so round-tripped rows display the same
// receipt the export showed.
func ParseTransactionsCSV(data []byte) ([]domain.Transaction, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv")
	}
	if len(records[0]) != len(historyHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(historyHeader), len(records[0]))
	}

	var out []domain.Transaction
	for i, rec := range records[1:] {
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", i+1, rec[0], err)
		}
		// Malformed amounts coerce to 0, same as the aggregation engine.
		amount, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			amount = 0
		}
		receipt := rec[6]
		out = append(out, domain.Transaction{
			Date:        date,
			Contributor: rec[1],
			Amount:      amount,
			Type:        domain.TransactionType(rec[3]),
			Category:    rec[4],
			Status:      domain.TransactionStatus(rec[5]),
			ReceiptID:   &receipt,
		})
	}
	return out, nil
}
