package repository

import (
	"context"
	"errors"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/finance"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PayrollRepository struct {
	DB *db.Postgres
}

type PayrollInput struct {
	StaffID     *int64
	Month       string
	BasicSalary float64
	Allowances  float64
	Deductions  float64
}

func (r PayrollRepository) Create(ctx context.Context, in PayrollInput) (*domain.PayrollRecord, error) {
	// net_pay is stored for reporting queries but always written as the
	// derived value; it is never accepted from a caller.
	netPay := finance.NetPay(in.BasicSalary, in.Allowances, in.Deductions)
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO payroll_records (staff_id, month, basic_salary, allowances, deductions, net_pay, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now(), now())
		RETURNING id, staff_id, month, basic_salary, allowances, deductions, net_pay, status, payment_date, created_at, updated_at
	`, in.StaffID, in.Month, in.BasicSalary, in.Allowances, in.Deductions, netPay, string(domain.PayrollPending))
	return scanPayroll(row)
}

func (r PayrollRepository) Update(ctx context.Context, id int64, in PayrollInput) (*domain.PayrollRecord, error) {
	netPay := finance.NetPay(in.BasicSalary, in.Allowances, in.Deductions)
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE payroll_records
		SET staff_id=$2, month=$3, basic_salary=$4, allowances=$5, deductions=$6, net_pay=$7, updated_at=now()
		WHERE id=$1
		RETURNING id, staff_id, month, basic_salary, allowances, deductions, net_pay, status, payment_date, created_at, updated_at
	`, id, in.StaffID, in.Month, in.BasicSalary, in.Allowances, in.Deductions, netPay)
	rec, err := scanPayroll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// MarkPaid transitions a record to Paid and stamps the payment date.
func (r PayrollRepository) MarkPaid(ctx context.Context, id int64) (*domain.PayrollRecord, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE payroll_records
		SET status=$2, payment_date=now(), updated_at=now()
		WHERE id=$1
		RETURNING id, staff_id, month, basic_salary, allowances, deductions, net_pay, status, payment_date, created_at, updated_at
	`, id, string(domain.PayrollPaid))
	rec, err := scanPayroll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r PayrollRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM payroll_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByMonth returns payroll records for a period joined with staff details.
// A missing staff reference degrades to placeholder labels.
func (r PayrollRepository) ListByMonth(ctx context.Context, month string) ([]domain.PayrollEntry, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT p.id, p.staff_id, p.month, p.basic_salary, p.allowances, p.deductions, p.net_pay,
		       p.status, p.payment_date, p.created_at, p.updated_at,
		       COALESCE(s.name, 'Unknown'), COALESCE(s.role, 'Staff'), s.image_url
		FROM payroll_records p
		LEFT JOIN staff s ON s.id = p.staff_id AND s.deleted_at IS NULL
		WHERE p.month = $1
		ORDER BY p.id ASC
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PayrollEntry
	for rows.Next() {
		var e domain.PayrollEntry
		var staffID pgtype.Int8
		var status string
		if err := rows.Scan(&e.ID, &staffID, &e.Month, &e.BasicSalary, &e.Allowances, &e.Deductions, &e.NetPay,
			&status, &e.PaymentDate, &e.CreatedAt, &e.UpdatedAt,
			&e.StaffName, &e.StaffRole, &e.StaffImage); err != nil {
			return nil, err
		}
		if staffID.Valid {
			e.StaffID = &staffID.Int64
		}
		e.Status = domain.PayrollStatus(status)
		items = append(items, e)
	}
	return items, rows.Err()
}

// SumNetPay totals a period from the three pay inputs, not the stored
// net_pay column, so a drifted stored value cannot skew the trend.
func (r PayrollRepository) SumNetPay(ctx context.Context, month string) (float64, error) {
	var total float64
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(basic_salary + allowances - deductions), 0)
		FROM payroll_records
		WHERE month = $1
	`, month).Scan(&total)
	return total, err
}

func scanPayroll(row pgx.Row) (*domain.PayrollRecord, error) {
	var rec domain.PayrollRecord
	var staffID pgtype.Int8
	var status string
	if err := row.Scan(&rec.ID, &staffID, &rec.Month, &rec.BasicSalary, &rec.Allowances, &rec.Deductions, &rec.NetPay,
		&status, &rec.PaymentDate, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if staffID.Valid {
		rec.StaffID = &staffID.Int64
	}
	rec.Status = domain.PayrollStatus(status)
	return &rec, nil
}
