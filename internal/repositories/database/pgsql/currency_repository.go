package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbase/currency_exchange_app/internal/apperrors"
	"github.com/finbase/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/finbase/currency_exchange_app/internal/core/ports/repositories"
	"github.com/finbase/currency_exchange_app/internal/models"
	"github.com/finbase/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const currencyColumns = `currency_id, code, name, symbol, country_code, notes, decimal_places, is_active, created_at, created_by, last_updated_at, last_updated_by`

// currencySelectColumns coalesces the nullable text columns so rows written
// outside this service (with real NULLs) still scan into plain strings.
const currencySelectColumns = `currency_id, code, name, COALESCE(symbol, ''), COALESCE(country_code, ''), COALESCE(notes, ''), decimal_places, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryWithTx {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryWithTx = (*PgxCurrencyRepository)(nil)

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyID,
		&m.Code,
		&m.Name,
		&m.Symbol,
		&m.CountryCode,
		&m.Notes,
		&m.DecimalPlaces,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCurrency inserts a new currency. The unique index on code surfaces as
// apperrors.ErrDuplicate.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyID,
		m.Code,
		m.Name,
		m.Symbol,
		m.CountryCode,
		m.Notes,
		m.DecimalPlaces,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("currency code " + m.Code + " already exists")
		}
		return fmt.Errorf("failed to save currency %s: %w", m.Code, err)
	}
	return nil
}

// UpdateCurrency persists the mutable fields of an existing currency. The
// code column is never touched.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)

	query := `
		UPDATE currencies
		SET name = $2, symbol = $3, country_code = $4, notes = $5,
			decimal_places = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE currency_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.CurrencyID,
		m.Name,
		m.Symbol,
		m.CountryCode,
		m.Notes,
		m.DecimalPlaces,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency %s: %w", m.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("currency " + m.CurrencyID + " not found")
	}
	return nil
}

// FindCurrencyByID retrieves a currency by its opaque identifier.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencySelectColumns + ` FROM currencies WHERE currency_id = $1;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency " + currencyID + " not found")
		}
		return nil, fmt.Errorf("failed to find currency by id %s: %w", currencyID, err)
	}

	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code. Codes are
// stored uppercase, so the normalized domain code matches directly.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code domain.CurrencyCode) (*domain.Currency, error) {
	query := `SELECT ` + currencySelectColumns + ` FROM currencies WHERE code = $1;`

	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, code.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency " + code.String() + " not found")
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}

	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// ListCurrencies retrieves currencies matching the filters, ordered by code
// ascending, plus the total count before paging.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, params portsrepo.ListCurrenciesParams) ([]domain.Currency, int, error) {
	baseQuery := `FROM currencies WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if params.CodeContains != "" {
		baseQuery += fmt.Sprintf(" AND code ILIKE $%d", argNum)
		args = append(args, "%"+params.CodeContains+"%")
		argNum++
	}
	if params.NameContains != "" {
		baseQuery += fmt.Sprintf(" AND name ILIKE $%d", argNum)
		args = append(args, "%"+params.NameContains+"%")
		argNum++
	}
	if params.CountryCode != "" {
		baseQuery += fmt.Sprintf(" AND country_code = $%d", argNum)
		args = append(args, params.CountryCode)
		argNum++
	}
	if params.IsActive != nil {
		baseQuery += fmt.Sprintf(" AND is_active = $%d", argNum)
		args = append(args, *params.IsActive)
		argNum++
	} else if !params.IncludeInactive {
		baseQuery += " AND is_active = TRUE"
	}

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count currencies: %w", err)
	}
	if total == 0 {
		return []domain.Currency{}, 0, nil
	}

	baseQuery += " ORDER BY code ASC"
	if params.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, params.Limit, params.Skip)
	}

	rows, err := r.Pool.Query(ctx, "SELECT "+currencySelectColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), total, nil
}
