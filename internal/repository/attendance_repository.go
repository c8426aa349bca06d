package repository

import (
	"context"
	"errors"
	"time"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/sync/errgroup"
)

type AttendanceRepository struct {
	DB *db.Postgres
}

const attendanceColumns = `id, member_id, member_name, event_id, log_date, status, source, created_at`

type AttendanceInput struct {
	MemberID   *int64
	MemberName string
	EventID    *int64
	Date       time.Time
	Status     domain.AttendanceStatus
	Source     string
}

// BulkResult reports the outcome of one row in a bulk check-in. The batch is
// best-effort: every row is attempted and the caller decides what to do with
// partial failure.
type BulkResult struct {
	Index int
	Log   *domain.AttendanceLog
	Err   error
}

func (r AttendanceRepository) List(ctx context.Context, eventID *int64, date *time.Time, limit int) ([]domain.AttendanceLog, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_logs
		WHERE deleted_at IS NULL
		  AND ($1::bigint IS NULL OR event_id = $1)
		  AND ($2::date IS NULL OR log_date = $2)
		ORDER BY log_date DESC, id DESC
		LIMIT $3
	`, eventID, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.AttendanceLog
	for rows.Next() {
		log, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *log)
	}
	return items, rows.Err()
}

func (r AttendanceRepository) Create(ctx context.Context, in AttendanceInput) (*domain.AttendanceLog, error) {
	if in.Status == "" {
		in.Status = domain.AttendancePresent
	}
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO attendance_logs (member_id, member_name, event_id, log_date, status, source, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, now())
		RETURNING `+attendanceColumns+`
	`, in.MemberID, in.MemberName, in.EventID, in.Date, string(in.Status), in.Source)
	return scanAttendance(row)
}

func (r AttendanceRepository) Update(ctx context.Context, id int64, in AttendanceInput) (*domain.AttendanceLog, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE attendance_logs
		SET member_id=$2, member_name=$3, event_id=$4, log_date=$5, status=$6, source=$7
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING `+attendanceColumns+`
	`, id, in.MemberID, in.MemberName, in.EventID, in.Date, string(in.Status), in.Source)
	log, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

func (r AttendanceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE attendance_logs SET deleted_at = now() WHERE id=$1`, id)
	return err
}

// BulkCreate inserts every row concurrently and waits for all of them to
// settle, returning one result per input in input order. A failed row never
// aborts the rest.
func (r AttendanceRepository) BulkCreate(ctx context.Context, inputs []AttendanceInput) []BulkResult {
	results := make([]BulkResult, len(inputs))

	g := new(errgroup.Group)
	g.SetLimit(8)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			log, err := r.Create(ctx, in)
			results[i] = BulkResult{Index: i, Log: log, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func scanAttendance(row pgx.Row) (*domain.AttendanceLog, error) {
	var a domain.AttendanceLog
	var memberID, eventID pgtype.Int8
	var status string
	if err := row.Scan(&a.ID, &memberID, &a.MemberName, &eventID, &a.Date, &status, &a.Source, &a.CreatedAt); err != nil {
		return nil, err
	}
	if memberID.Valid {
		a.MemberID = &memberID.Int64
	}
	if eventID.Valid {
		a.EventID = &eventID.Int64
	}
	a.Status = domain.AttendanceStatus(status)
	return &a, nil
}
