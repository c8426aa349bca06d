package repository

import (
	"context"
	"errors"

	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type SettingsRepository struct {
	DB *db.Postgres
}

// Get returns the single church profile row, or defaults when none exists.
func (r SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT church_name, church_address, church_phone, receipt_footer, currency_code, updated_at
		FROM settings
		LIMIT 1
	`)
	var s domain.Settings
	if err := row.Scan(&s.ChurchName, &s.ChurchAddress, &s.ChurchPhone, &s.ReceiptFooter, &s.CurrencyCode, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Settings{CurrencyCode: "GHS"}, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r SettingsRepository) Save(ctx context.Context, s domain.Settings) (*domain.Settings, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO settings (singleton, church_name, church_address, church_phone, receipt_footer, currency_code, updated_at)
		VALUES (true, $1,$2,$3,$4,$5, now())
		ON CONFLICT (singleton) DO UPDATE SET
			church_name=EXCLUDED.church_name,
			church_address=EXCLUDED.church_address,
			church_phone=EXCLUDED.church_phone,
			receipt_footer=EXCLUDED.receipt_footer,
			currency_code=EXCLUDED.currency_code,
			updated_at=now()
		RETURNING church_name, church_address, church_phone, receipt_footer, currency_code, updated_at
	`, s.ChurchName, s.ChurchAddress, s.ChurchPhone, s.ReceiptFooter, s.CurrencyCode)
	var out domain.Settings
	if err := row.Scan(&out.ChurchName, &out.ChurchAddress, &out.ChurchPhone, &out.ReceiptFooter, &out.CurrencyCode, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
