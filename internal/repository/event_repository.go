package repository

import (
	"context"
	"errors"
	"time"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type EventRepository struct {
	DB *db.Postgres
}

const eventColumns = `id, title, description, location, starts_at, ends_at, created_at, updated_at`

type EventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      *time.Time
}

func (r EventRepository) List(ctx context.Context, limit int) ([]domain.ChurchEvent, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM church_events
		WHERE deleted_at IS NULL
		ORDER BY starts_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.ChurchEvent
	for rows.Next() {
		var e domain.ChurchEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r EventRepository) Create(ctx context.Context, in EventInput) (*domain.ChurchEvent, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO church_events (title, description, location, starts_at, ends_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5, now(), now())
		RETURNING `+eventColumns+`
	`, in.Title, in.Description, in.Location, in.StartsAt, in.EndsAt)
	return scanEvent(row)
}

func (r EventRepository) Update(ctx context.Context, id int64, in EventInput) (*domain.ChurchEvent, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE church_events
		SET title=$2, description=$3, location=$4, starts_at=$5, ends_at=$6, updated_at=now()
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING `+eventColumns+`
	`, id, in.Title, in.Description, in.Location, in.StartsAt, in.EndsAt)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r EventRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE church_events SET deleted_at = now() WHERE id=$1`, id)
	return err
}

func scanEvent(row pgx.Row) (*domain.ChurchEvent, error) {
	var e domain.ChurchEvent
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
