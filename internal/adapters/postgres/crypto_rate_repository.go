package postgres

import (
	"context"
	"errors"
	"fmt"

	"ngnfx/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CryptoRateRepository struct {
	pool *pgxpool.Pool
}

func (r *CryptoRateRepository) Save(ctx context.Context, data domain.InternalCryptoData) (domain.InternalCryptoData, error) {
	const q = `
		insert into internal_crypto_rates (usdt_ngn_buy, usdt_ngn_sell, usdt_usd_rate, btc_usdt_price, btc_ngn_price, timestamp)
		values ($1, $2, $3, $4, $5, coalesce($6, now()))
		returning id, timestamp;
	`

	err := r.pool.QueryRow(ctx, q,
		data.USDTNGNBuy, data.USDTNGNSell, data.USDTUSDRate, data.BTCUSDTPrice, data.BTCNGNPrice, nullTime(data.Timestamp),
	).Scan(&data.ID, &data.Timestamp)
	if err != nil {
		return domain.InternalCryptoData{}, fmt.Errorf("failed to insert internal crypto rates: %w", err)
	}
	return data, nil
}

func (r *CryptoRateRepository) Latest(ctx context.Context) (domain.InternalCryptoData, error) {
	const q = `
		select id, usdt_ngn_buy::float8, usdt_ngn_sell::float8, usdt_usd_rate::float8,
		       btc_usdt_price::float8, btc_ngn_price::float8, timestamp
		from internal_crypto_rates
		order by timestamp desc, id desc
		limit 1;
	`

	var d domain.InternalCryptoData
	err := r.pool.QueryRow(ctx, q).Scan(&d.ID, &d.USDTNGNBuy, &d.USDTNGNSell, &d.USDTUSDRate, &d.BTCUSDTPrice, &d.BTCNGNPrice, &d.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.InternalCryptoData{}, domain.ErrNoCryptoData
		}
		return domain.InternalCryptoData{}, fmt.Errorf("failed to get latest internal crypto rates: %w", err)
	}
	return d, nil
}

func NewCryptoRateRepository(pool *pgxpool.Pool) *CryptoRateRepository {
	return &CryptoRateRepository{pool: pool}
}
