package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ngnfx/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CalculationRepository struct {
	pool *pgxpool.Pool
}

const calculationColumns = `
	id, baseline_rate::float8, crypto_implied_rate::float8, crypto_premium::float8,
	liquidity_spread::float8, liquidity_spread_raw::float8, desk_spread::float8,
	final_usd_ngn_rate::float8, calculation_method, baseline_sources, otc_status, raw_sources, timestamp`

func (r *CalculationRepository) Save(ctx context.Context, rate domain.FinalRate) error {
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	raw := rate.RawSources
	if raw == nil {
		raw = []domain.ExternalRate{}
	}
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal raw sources: %w", err)
	}
	sources := rate.BaselineSources
	if sources == nil {
		sources = []string{}
	}

	const q = `
		insert into fx_rate_calculations (
			id, baseline_rate, crypto_implied_rate, crypto_premium, liquidity_spread, liquidity_spread_raw,
			desk_spread, final_usd_ngn_rate, calculation_method, baseline_sources, otc_status, raw_sources, timestamp
		) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13);
	`

	_, err = r.pool.Exec(ctx, q,
		rate.ID, rate.BaselineRate, rate.CryptoImpliedRate, rate.CryptoPremium, rate.LiquiditySpread,
		rate.LiquiditySpreadRaw, rate.DeskSpread, rate.FinalUSDNGNRate, string(rate.CalculationMethod),
		sources, string(rate.OTCStatus), string(rawJSON), rate.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rate calculation %s: %w", rate.ID, err)
	}
	return nil
}

func (r *CalculationRepository) Latest(ctx context.Context) (domain.FinalRate, error) {
	q := `select ` + calculationColumns + ` from fx_rate_calculations order by timestamp desc limit 1;`

	rate, err := scanCalculation(r.pool.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FinalRate{}, domain.ErrCalculationNotFound
		}
		return domain.FinalRate{}, fmt.Errorf("failed to get latest rate calculation: %w", err)
	}
	return rate, nil
}

// History returns calculations newer than since, newest first.
func (r *CalculationRepository) History(ctx context.Context, since time.Time, limit int) ([]domain.FinalRate, error) {
	q := `select ` + calculationColumns + ` from fx_rate_calculations
		where timestamp >= $1 order by timestamp desc limit $2;`

	rows, err := r.pool.Query(ctx, q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.FinalRate, 0, limit)
	for rows.Next() {
		rate, scanErr := scanCalculation(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan rate calculation: %w", scanErr)
		}
		out = append(out, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate history: %w", err)
	}
	return out, nil
}

func scanCalculation(row pgx.Row) (domain.FinalRate, error) {
	var rate domain.FinalRate
	var method, otcStatus string
	var rawJSON []byte

	err := row.Scan(
		&rate.ID, &rate.BaselineRate, &rate.CryptoImpliedRate, &rate.CryptoPremium,
		&rate.LiquiditySpread, &rate.LiquiditySpreadRaw, &rate.DeskSpread,
		&rate.FinalUSDNGNRate, &method, &rate.BaselineSources, &otcStatus, &rawJSON, &rate.Timestamp,
	)
	if err != nil {
		return domain.FinalRate{}, err
	}
	rate.CalculationMethod = domain.CalculationMethod(method)
	rate.OTCStatus = domain.OTCStatus(otcStatus)
	if len(rawJSON) > 0 {
		if err = json.Unmarshal(rawJSON, &rate.RawSources); err != nil {
			return domain.FinalRate{}, fmt.Errorf("failed to decode raw sources: %w", err)
		}
	}
	return rate, nil
}

func NewCalculationRepository(pool *pgxpool.Pool) *CalculationRepository {
	return &CalculationRepository{pool: pool}
}
