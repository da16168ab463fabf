package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"ngnfx/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CalculationLogRepository struct {
	pool *pgxpool.Pool
}

func (r *CalculationLogRepository) Insert(ctx context.Context, entry domain.CalculationLog) error {
	logCtx := entry.Context
	if logCtx == nil {
		logCtx = map[string]any{}
	}
	ctxJSON, err := json.Marshal(logCtx)
	if err != nil {
		return fmt.Errorf("failed to marshal log context: %w", err)
	}

	const q = `
		insert into rate_calculation_logs (level, message, context, timestamp)
		values ($1, $2, $3::jsonb, coalesce($4, now()));
	`

	if _, err = r.pool.Exec(ctx, q, string(entry.Level), entry.Message, string(ctxJSON), nullTime(entry.Timestamp)); err != nil {
		return fmt.Errorf("failed to insert calculation log: %w", err)
	}
	return nil
}

// Recent returns the newest log rows, optionally filtered by level.
func (r *CalculationLogRepository) Recent(ctx context.Context, level domain.LogLevel, limit int) ([]domain.CalculationLog, error) {
	const q = `
		select level, message, context, timestamp
		from rate_calculation_logs
		where ($1 = '' or level = $1)
		order by timestamp desc, id desc
		limit $2;
	`

	rows, err := r.pool.Query(ctx, q, string(level), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculation logs: %w", err)
	}
	defer rows.Close()

	var out []domain.CalculationLog
	for rows.Next() {
		var e domain.CalculationLog
		var lvl string
		var ctxJSON []byte
		if err = rows.Scan(&lvl, &e.Message, &ctxJSON, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan calculation log: %w", err)
		}
		e.Level = domain.LogLevel(lvl)
		if err = json.Unmarshal(ctxJSON, &e.Context); err != nil {
			return nil, fmt.Errorf("failed to decode log context: %w", err)
		}
		out = append(out, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculation logs: %w", err)
	}
	return out, nil
}

func NewCalculationLogRepository(pool *pgxpool.Pool) *CalculationLogRepository {
	return &CalculationLogRepository{pool: pool}
}
