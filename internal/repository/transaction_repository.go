package repository

import (
	"context"
	"errors"
	"time"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type TransactionRepository struct {
	DB *db.Postgres
}

type TransactionInput struct {
	Date        time.Time
	Contributor string
	Type        domain.TransactionType
	Category    string
	Amount      float64
	Description string
	Status      domain.TransactionStatus
	ReceiptID   *string
}

// CategoryRewrite is the replacement applied to every row in a category by
// RenameCategory. Amount, date, contributor and status stay untouched.
type CategoryRewrite struct {
	Category    string
	Type        domain.TransactionType
	Description string
}

const transactionColumns = `id, tx_date, contributor, type, category, amount, description, status, receipt_id, created_at, updated_at`

func (r TransactionRepository) Create(ctx context.Context, in TransactionInput) (*domain.Transaction, error) {
	if in.Status == "" {
		in.Status = domain.StatusProcessed
	}
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO transactions (tx_date, contributor, type, category, amount, description, status, receipt_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, now(), now())
		RETURNING `+transactionColumns+`
	`, in.Date, in.Contributor, string(in.Type), in.Category, in.Amount, in.Description, string(in.Status), in.ReceiptID)
	return scanTransaction(row)
}

// ListAll returns the full collection, newest first. The aggregation snapshot
// is seeded from this.
func (r TransactionRepository) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY tx_date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r TransactionRepository) ListByType(ctx context.Context, typ domain.TransactionType, limit int) ([]domain.Transaction, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE type = $1
		ORDER BY tx_date DESC, id DESC
		LIMIT $2
	`, string(typ), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r TransactionRepository) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id=$1
	`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r TransactionRepository) Update(ctx context.Context, id int64, in TransactionInput) (*domain.Transaction, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE transactions
		SET tx_date=$2, contributor=$3, type=$4, category=$5, amount=$6, description=$7, status=$8, receipt_id=$9, updated_at=now()
		WHERE id=$1
		RETURNING `+transactionColumns+`
	`, id, in.Date, in.Contributor, string(in.Type), in.Category, in.Amount, in.Description, string(in.Status), in.ReceiptID)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Delete is permanent and immediate; there is no soft delete for
// transactions.
func (r TransactionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RenameCategory rewrites every transaction in the old category in one
// statement, so the bulk update is atomic instead of a best-effort per-row
// fan-out. Returns the number of rows rewritten.
func (r TransactionRepository) RenameCategory(ctx context.Context, oldName string, in CategoryRewrite) (int64, error) {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE transactions
		SET category=$2, type=$3, description=$4, updated_at=now()
		WHERE category=$1
	`, oldName, in.Category, string(in.Type), in.Description)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteCategory permanently removes every transaction carrying the label.
// Atomic for the same reason as RenameCategory.
func (r TransactionRepository) DeleteCategory(ctx context.Context, name string) (int64, error) {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM transactions WHERE category=$1`, name)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var typ, status string
	if err := row.Scan(&t.ID, &t.Date, &t.Contributor, &typ, &t.Category, &t.Amount, &t.Description, &status, &t.ReceiptID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(typ)
	t.Status = domain.TransactionStatus(status)
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var items []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}
