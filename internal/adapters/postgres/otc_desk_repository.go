package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ngnfx/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OTCDeskRepository struct {
	pool *pgxpool.Pool
}

func (r *OTCDeskRepository) Save(ctx context.Context, data domain.OTCDeskData) (domain.OTCDeskData, error) {
	const q = `
		insert into otc_desk_rates (usd_cost, ngn_cost, desk_spread, updated_by, timestamp)
		values ($1, $2, $3, $4, coalesce($5, now()))
		returning id, timestamp;
	`

	err := r.pool.QueryRow(ctx, q, data.USDCost, data.NGNCost, data.DeskSpread, data.UpdatedBy, nullTime(data.Timestamp)).
		Scan(&data.ID, &data.Timestamp)
	if err != nil {
		return domain.OTCDeskData{}, fmt.Errorf("failed to insert otc desk rates: %w", err)
	}
	return data, nil
}

func (r *OTCDeskRepository) Latest(ctx context.Context) (domain.OTCDeskData, error) {
	const q = `
		select id, usd_cost::float8, ngn_cost::float8, desk_spread::float8, updated_by, timestamp
		from otc_desk_rates
		order by timestamp desc, id desc
		limit 1;
	`

	var d domain.OTCDeskData
	err := r.pool.QueryRow(ctx, q).Scan(&d.ID, &d.USDCost, &d.NGNCost, &d.DeskSpread, &d.UpdatedBy, &d.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OTCDeskData{}, domain.ErrOTCDataNotFound
		}
		return domain.OTCDeskData{}, fmt.Errorf("failed to get latest otc desk rates: %w", err)
	}
	return d, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func NewOTCDeskRepository(pool *pgxpool.Pool) *OTCDeskRepository {
	return &OTCDeskRepository{pool: pool}
}
