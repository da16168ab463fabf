package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ngnfx/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExternalRateRepository struct {
	pool *pgxpool.Pool
}

type externalRateRow struct {
	ID             uuid.UUID `json:"id"`
	CycleID        uuid.UUID `json:"cycle_id"`
	SourceName     string    `json:"source_name"`
	USDNGNRate     *float64  `json:"usd_ngn_rate"`
	Status         string    `json:"status"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Error          *string   `json:"error"`
	Timestamp      time.Time `json:"timestamp"`
}

// SaveBatch stores every attempt of one collection cycle in a single statement.
func (r *ExternalRateRepository) SaveBatch(ctx context.Context, cycleID uuid.UUID, rates []domain.ExternalRate) error {
	if len(rates) == 0 {
		return nil
	}

	rows := make([]externalRateRow, 0, len(rates))
	for _, rate := range rates {
		row := externalRateRow{
			ID:             uuid.New(),
			CycleID:        cycleID,
			SourceName:     rate.Source,
			Status:         string(rate.Status),
			ResponseTimeMs: rate.ResponseTimeMs,
			Timestamp:      rate.Timestamp,
		}
		if rate.IsValid() {
			v := rate.USDNGNRate
			row.USDNGNRate = &v
		}
		if rate.Error != "" {
			e := rate.Error
			row.Error = &e
		}
		rows = append(rows, row)
	}

	payloadJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal external rates: %w", err)
	}

	const q = `
		insert into external_rate_sources (id, cycle_id, source_name, usd_ngn_rate, status, response_time_ms, error, timestamp)
		select r.id, r.cycle_id, r.source_name, r.usd_ngn_rate, r.status, r.response_time_ms, r.error, r.timestamp
		from json_to_recordset($1::json) as r(
			id uuid, cycle_id uuid, source_name text, usd_ngn_rate numeric,
			status text, response_time_ms integer, error text, timestamp timestamptz
		);
	`

	if _, err = r.pool.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to insert external rates for cycle %s: %w", cycleID, err)
	}
	return nil
}

func NewExternalRateRepository(pool *pgxpool.Pool) *ExternalRateRepository {
	return &ExternalRateRepository{pool: pool}
}
