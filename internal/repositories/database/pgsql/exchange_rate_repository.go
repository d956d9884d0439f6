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

const exchangeRateColumns = `exchange_rate_id, currency_id, rate, rate_date, source, provider, notes, created_at, created_by, last_updated_at, last_updated_by`

// exchangeRateSelectColumns coalesces nullable notes so externally written
// rows with real NULLs still scan into plain strings.
const exchangeRateSelectColumns = `exchange_rate_id, currency_id, rate, rate_date, source, provider, COALESCE(notes, ''), created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements the exchange rate repository ports
// using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.CurrencyID,
		&m.Rate,
		&m.RateDate,
		&m.Source,
		&m.Provider,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExchangeRate inserts a new dated rate. The unique index on
// (currency_id, rate_date) surfaces as apperrors.ErrDuplicate, so concurrent
// creates for the same pair never silently overwrite each other.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.CurrencyID,
		m.Rate,
		m.RateDate,
		m.Source,
		m.Provider,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("a rate for this currency and date already exists")
		}
		return fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return nil
}

// UpdateExchangeRate persists the mutable columns of an existing rate.
// currency_id and rate_date are immutable and never part of the SET list.
func (r *PgxExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	query := `
		UPDATE exchange_rates
		SET rate = $2, source = $3, provider = $4, notes = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE exchange_rate_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.Rate,
		m.Source,
		m.Provider,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update exchange rate %s: %w", m.ExchangeRateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + m.ExchangeRateID + " not found")
	}
	return nil
}

// DeleteExchangeRate removes a rate row.
func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, rateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM exchange_rates WHERE exchange_rate_id = $1;`, rateID)
	if err != nil {
		return fmt.Errorf("failed to delete exchange rate %s: %w", rateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + rateID + " not found")
	}
	return nil
}

// FindExchangeRateByID retrieves a rate by its opaque identifier.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateSelectColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate " + rateID + " not found")
		}
		return nil, fmt.Errorf("failed to find exchange rate %s: %w", rateID, err)
	}

	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// FindLatestRateAsOf retrieves the rate with the greatest rate_date not after
// asOf for the currency with the given code. The effective-dated lookup every
// conversion depends on.
func (r *PgxExchangeRateRepository) FindLatestRateAsOf(ctx context.Context, code domain.CurrencyCode, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT er.exchange_rate_id, er.currency_id, er.rate, er.rate_date, er.source, er.provider, COALESCE(er.notes, ''),
			er.created_at, er.created_by, er.last_updated_at, er.last_updated_by
		FROM exchange_rates er
		JOIN currencies c ON c.currency_id = er.currency_id
		WHERE c.code = $1 AND er.rate_date <= $2
		ORDER BY er.rate_date DESC
		LIMIT 1;
	`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, code.String(), asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate for currency " + code.String() + " on or before " + asOf.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find latest rate for %s: %w", code, err)
	}

	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// CountRatesForCurrency reports how many rate rows reference the currency.
func (r *PgxExchangeRateRepository) CountRatesForCurrency(ctx context.Context, currencyID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exchange_rates WHERE currency_id = $1;`, currencyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rates for currency %s: %w", currencyID, err)
	}
	return count, nil
}

// ListExchangeRates retrieves rates matching the filters ordered by rate_date
// descending then currency code ascending (a stable tie-break so pagination
// stays deterministic), plus the total count.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, params portsrepo.ListExchangeRatesParams) ([]domain.ExchangeRate, int, error) {
	baseQuery := `FROM exchange_rates er JOIN currencies c ON c.currency_id = er.currency_id WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if params.CurrencyCodeContains != "" {
		baseQuery += fmt.Sprintf(" AND c.code ILIKE $%d", argNum)
		args = append(args, "%"+params.CurrencyCodeContains+"%")
		argNum++
	}
	if params.DateFrom != nil {
		baseQuery += fmt.Sprintf(" AND er.rate_date >= $%d", argNum)
		args = append(args, *params.DateFrom)
		argNum++
	}
	if params.DateTo != nil {
		baseQuery += fmt.Sprintf(" AND er.rate_date <= $%d", argNum)
		args = append(args, *params.DateTo)
		argNum++
	}
	if params.SourceContains != "" {
		baseQuery += fmt.Sprintf(" AND er.source ILIKE $%d", argNum)
		args = append(args, "%"+params.SourceContains+"%")
		argNum++
	}
	if params.ProviderContains != "" {
		baseQuery += fmt.Sprintf(" AND er.provider ILIKE $%d", argNum)
		args = append(args, "%"+params.ProviderContains+"%")
		argNum++
	}
	if !params.IncludeInactiveCurrencies {
		baseQuery += " AND c.is_active = TRUE"
	}

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}
	if total == 0 {
		return []domain.ExchangeRate{}, 0, nil
	}

	baseQuery += " ORDER BY er.rate_date DESC, c.code ASC"
	if params.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, params.Limit, params.Skip)
	}

	selectCols := `er.exchange_rate_id, er.currency_id, er.rate, er.rate_date, er.source, er.provider, COALESCE(er.notes, ''),
		er.created_at, er.created_by, er.last_updated_at, er.last_updated_by`

	rows, err := r.Pool.Query(ctx, "SELECT "+selectCols+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), total, nil
}
