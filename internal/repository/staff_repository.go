package repository

import (
	"context"
	"errors"
	"time"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type StaffRepository struct {
	DB *db.Postgres
}

const staffColumns = `id, name, role, department, phone, email, image_url, created_at, updated_at`

func (r StaffRepository) List(ctx context.Context, limit int) ([]domain.Staff, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Staff
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.Department, &s.Phone, &s.Email, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r StaffRepository) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	var s domain.Staff
	if err := row.Scan(&s.ID, &s.Name, &s.Role, &s.Department, &s.Phone, &s.Email, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r StaffRepository) Upsert(ctx context.Context, s domain.Staff) (*domain.Staff, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO staff (id, name, role, department, phone, email, image_url, created_at, updated_at)
		VALUES (COALESCE($1, nextval('staff_id_seq')), $2,$3,$4,$5,$6,$7, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name,
			role=EXCLUDED.role,
			department=EXCLUDED.department,
			phone=EXCLUDED.phone,
			email=EXCLUDED.email,
			image_url=COALESCE(EXCLUDED.image_url, staff.image_url),
			updated_at=now(),
			deleted_at=NULL
		RETURNING `+staffColumns+`
	`, nullableID(s.ID), s.Name, s.Role, s.Department, s.Phone, s.Email, s.ImageURL)
	var out domain.Staff
	if err := row.Scan(&out.ID, &out.Name, &out.Role, &out.Department, &out.Phone, &out.Email, &out.ImageURL, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r StaffRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE staff SET deleted_at = now() WHERE id=$1`, id)
	return err
}

type AssignmentInput struct {
	MemberID  *int64
	Position  string
	StartDate time.Time
	EndDate   *time.Time
}

// ListAssignments returns position assignments joined with the member's name,
// newest first. A missing member reference degrades to a placeholder.
func (r StaffRepository) ListAssignments(ctx context.Context) ([]domain.StaffAssignment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT a.id, a.member_id, a.position, a.start_date, a.end_date,
		       COALESCE(m.first_name || ' ' || m.last_name, 'Unknown')
		FROM staff_assignments a
		LEFT JOIN members m ON m.id = a.member_id AND m.deleted_at IS NULL
		ORDER BY a.start_date DESC, a.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.StaffAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r StaffRepository) CreateAssignment(ctx context.Context, in AssignmentInput) (*domain.StaffAssignment, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO staff_assignments (member_id, position, start_date, end_date)
			VALUES ($1,$2,$3,$4)
			RETURNING id, member_id, position, start_date, end_date
		)
		SELECT i.id, i.member_id, i.position, i.start_date, i.end_date,
		       COALESCE(m.first_name || ' ' || m.last_name, 'Unknown')
		FROM inserted i
		LEFT JOIN members m ON m.id = i.member_id AND m.deleted_at IS NULL
	`, in.MemberID, in.Position, in.StartDate, in.EndDate)
	return scanAssignment(row)
}

func (r StaffRepository) UpdateAssignment(ctx context.Context, id int64, in AssignmentInput) (*domain.StaffAssignment, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE staff_assignments
			SET member_id=$2, position=$3, start_date=$4, end_date=$5
			WHERE id=$1
			RETURNING id, member_id, position, start_date, end_date
		)
		SELECT u.id, u.member_id, u.position, u.start_date, u.end_date,
		       COALESCE(m.first_name || ' ' || m.last_name, 'Unknown')
		FROM updated u
		LEFT JOIN members m ON m.id = u.member_id AND m.deleted_at IS NULL
	`, id, in.MemberID, in.Position, in.StartDate, in.EndDate)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r StaffRepository) DeleteAssignment(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM staff_assignments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAssignment(row pgx.Row) (*domain.StaffAssignment, error) {
	var a domain.StaffAssignment
	var memberID pgtype.Int8
	if err := row.Scan(&a.ID, &memberID, &a.Position, &a.StartDate, &a.EndDate, &a.MemberName); err != nil {
		return nil, err
	}
	if memberID.Valid {
		a.MemberID = &memberID.Int64
	}
	return &a, nil
}

// Positions lists the distinct roles in use, for the staff positions screen.
func (r StaffRepository) Positions(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT DISTINCT role
		FROM staff
		WHERE deleted_at IS NULL AND role <> ''
		ORDER BY role ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		items = append(items, role)
	}
	return items, rows.Err()
}
