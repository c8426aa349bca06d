package repository

import (
	"context"
	"errors"
	"time"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type MemberRepository struct {
	DB *db.Postgres
}

const memberColumns = `id, first_name, last_name, email, phone, address, joined_at, created_at, updated_at`

type MemberInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	JoinedAt  time.Time
}

func (r MemberRepository) List(ctx context.Context, limit int) ([]domain.Member, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE deleted_at IS NULL
		ORDER BY last_name ASC, first_name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Address, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r MemberRepository) Get(ctx context.Context, id int64) (*domain.Member, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	var m domain.Member
	if err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Address, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r MemberRepository) Create(ctx context.Context, in MemberInput) (*domain.Member, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO members (first_name, last_name, email, phone, address, joined_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6, now(), now())
		RETURNING `+memberColumns+`
	`, in.FirstName, in.LastName, in.Email, in.Phone, in.Address, in.JoinedAt)
	var m domain.Member
	if err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Address, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r MemberRepository) Update(ctx context.Context, id int64, in MemberInput) (*domain.Member, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE members
		SET first_name=$2, last_name=$3, email=$4, phone=$5, address=$6, joined_at=$7, updated_at=now()
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING `+memberColumns+`
	`, id, in.FirstName, in.LastName, in.Email, in.Phone, in.Address, in.JoinedAt)
	var m domain.Member
	if err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Address, &m.JoinedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r MemberRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE members SET deleted_at = now() WHERE id=$1`, id)
	return err
}
