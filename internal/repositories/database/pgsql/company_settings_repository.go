package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
	"github.com/finbase/currency_exchange_app/internal/models"
	"github.com/finbase/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCompanySettingsRepository exposes the base-currency pointer held on the
// company_settings table. The wider settings record is owned by the company
// configuration collaborator; this repository only reads the active row and
// writes the two base-currency columns.
type PgxCompanySettingsRepository struct {
	BaseRepository
}

func newPgxCompanySettingsRepository(pool *pgxpool.Pool) portsrepo.CompanySettingsRepository {
	return &PgxCompanySettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanySettingsRepository = (*PgxCompanySettingsRepository)(nil)

// GetActiveCompanySettings returns the single active settings row.
func (r *PgxCompanySettingsRepository) GetActiveCompanySettings(ctx context.Context) (*domain.CompanySettings, error) {
	query := `
		SELECT company_settings_id, COALESCE(base_currency_id, ''), COALESCE(base_currency_code, ''), is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM company_settings
		WHERE is_active = TRUE
		LIMIT 1;
	`

	var m models.CompanySettings
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.CompanySettingsID,
		&m.BaseCurrencyID,
		&m.BaseCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no active company settings")
		}
		return nil, fmt.Errorf("failed to read company settings: %w", err)
	}

	d := mapping.ToDomainCompanySettings(m)
	return &d, nil
}

// SetBaseCurrency persists both the currency id and, for legacy readers, its
// code on the active settings row.
func (r *PgxCompanySettingsRepository) SetBaseCurrency(ctx context.Context, currencyID string, code domain.CurrencyCode, updaterUserID string) error {
	query := `
		UPDATE company_settings
		SET base_currency_id = $1, base_currency_code = $2, last_updated_at = $3, last_updated_by = $4
		WHERE is_active = TRUE;
	`

	tag, err := r.Pool.Exec(ctx, query, currencyID, code.String(), time.Now(), updaterUserID)
	if err != nil {
		return fmt.Errorf("failed to set base currency: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("no active company settings")
	}
	return nil
}
