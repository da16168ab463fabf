package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"ngnfx/internal/adapters/postgres"
	"ngnfx/internal/domain"
	"ngnfx/internal/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, resetDatabase(ctx, pool))

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, db.Migrate(ctx, pool))

	pgContainer = pg
	pgConnStr = dsn
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `truncate table external_rate_sources, fx_rate_calculations, internal_crypto_rates,
		otc_desk_rates, rate_calculation_logs restart identity`)
	return err
}

func ptr(v float64) *float64 { return &v }

// ---------- ExternalRateRepository tests ----------

func attemptsByCycle(t *testing.T, pool *pgxpool.Pool, cycleID uuid.UUID) []domain.ExternalRate {
	t.Helper()

	rows, err := pool.Query(context.Background(), `
		select source_name, coalesce(usd_ngn_rate, 0)::float8, status, response_time_ms, coalesce(error, ''), timestamp
		from external_rate_sources
		where cycle_id = $1
		order by timestamp, source_name`, cycleID)
	require.NoError(t, err)
	defer rows.Close()

	var out []domain.ExternalRate
	for rows.Next() {
		var rate domain.ExternalRate
		var status string
		require.NoError(t, rows.Scan(&rate.Source, &rate.USDNGNRate, &status, &rate.ResponseTimeMs, &rate.Error, &rate.Timestamp))
		rate.Status = domain.SourceStatus(status)
		out = append(out, rate)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestExternalRateRepository_SaveBatch_KeepsFailedAttempts(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewExternalRateRepository(pool)
	ctx := context.Background()

	cycleID := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)
	err := repo.SaveBatch(ctx, cycleID, []domain.ExternalRate{
		{Source: "CryptoCompare", USDNGNRate: 1500.25, Status: domain.SourceSuccess, Timestamp: now, ResponseTimeMs: 120},
		{Source: "CoinMarketCap", Status: domain.SourceFailed, Error: "api key not configured", Timestamp: now.Add(time.Millisecond)},
		{Source: "CoinGecko_FX", Status: domain.SourceTimeout, Error: "context deadline exceeded", Timestamp: now.Add(2 * time.Millisecond)},
	})
	require.NoError(t, err)

	got := attemptsByCycle(t, pool, cycleID)
	require.Len(t, got, 3)
	require.Equal(t, "CryptoCompare", got[0].Source)
	require.Equal(t, domain.SourceSuccess, got[0].Status)
	require.InDelta(t, 1500.25, got[0].USDNGNRate, 1e-9)
	require.Equal(t, int64(120), got[0].ResponseTimeMs)
	require.Equal(t, domain.SourceFailed, got[1].Status)
	require.Zero(t, got[1].USDNGNRate)
	require.Equal(t, "api key not configured", got[1].Error)
	require.Equal(t, domain.SourceTimeout, got[2].Status)
}

func TestExternalRateRepository_SaveBatch_Empty(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewExternalRateRepository(pool)

	require.NoError(t, repo.SaveBatch(context.Background(), uuid.New(), nil))
}

// ---------- CalculationRepository tests ----------

func TestCalculationRepository_Latest_NotFound(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCalculationRepository(pool)

	_, err := repo.Latest(context.Background())
	require.ErrorIs(t, err, domain.ErrCalculationNotFound)
}

func TestCalculationRepository_SaveAndLatest(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCalculationRepository(pool)
	ctx := context.Background()

	ts := time.Now().UTC().Truncate(time.Microsecond)
	rate := domain.FinalRate{
		ID:                 uuid.New(),
		BaselineRate:       1500,
		CryptoImpliedRate:  ptr(1550),
		CryptoPremium:      50,
		LiquiditySpread:    5,
		LiquiditySpreadRaw: 5,
		DeskSpread:         10,
		FinalUSDNGNRate:    1565,
		Timestamp:          ts,
		CalculationMethod:  domain.MethodFull3Layer,
		BaselineSources:    []string{"CryptoCompare", "Binance_USDT"},
		OTCStatus:          domain.OTCAvailable,
		RawSources: []domain.ExternalRate{
			{Source: "CryptoCompare", USDNGNRate: 1500, Status: domain.SourceSuccess, Timestamp: ts},
		},
	}
	require.NoError(t, repo.Save(ctx, rate))

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, rate.ID, got.ID)
	require.Equal(t, 1565.0, got.FinalUSDNGNRate)
	require.NotNil(t, got.CryptoImpliedRate)
	require.Equal(t, 1550.0, *got.CryptoImpliedRate)
	require.Equal(t, domain.MethodFull3Layer, got.CalculationMethod)
	require.Equal(t, []string{"CryptoCompare", "Binance_USDT"}, got.BaselineSources)
	require.Equal(t, domain.OTCAvailable, got.OTCStatus)
	require.Len(t, got.RawSources, 1)
	require.True(t, ts.Equal(got.Timestamp))
}

func TestCalculationRepository_History(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCalculationRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, age := range []time.Duration{30 * time.Minute, 2 * time.Hour, 48 * time.Hour} {
		require.NoError(t, repo.Save(ctx, domain.FinalRate{
			ID:                uuid.New(),
			BaselineRate:      1500 + float64(i),
			FinalUSDNGNRate:   1510 + float64(i),
			Timestamp:         now.Add(-age),
			CalculationMethod: domain.MethodBaselineLiquidityOnly,
			OTCStatus:         domain.OTCUsingDefaults,
		}))
	}

	got, err := repo.History(ctx, now.Add(-24*time.Hour), 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1510.0, got[0].FinalUSDNGNRate)
	require.Equal(t, 1511.0, got[1].FinalUSDNGNRate)
	require.Nil(t, got[0].CryptoImpliedRate)

	limited, err := repo.History(ctx, now.Add(-72*time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

// ---------- CryptoRateRepository tests ----------

func TestCryptoRateRepository_SaveAndLatest(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCryptoRateRepository(pool)
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, domain.ErrNoCryptoData)

	_, err = repo.Save(ctx, domain.InternalCryptoData{USDTNGNSell: ptr(1540), USDTUSDRate: ptr(1), Timestamp: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	saved, err := repo.Save(ctx, domain.InternalCryptoData{BTCNGNPrice: ptr(70000000), BTCUSDTPrice: ptr(45000)})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.False(t, saved.Timestamp.IsZero())

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, saved.ID, got.ID)
	require.Nil(t, got.USDTNGNSell)
	require.Equal(t, 70000000.0, *got.BTCNGNPrice)
	require.Equal(t, 45000.0, *got.BTCUSDTPrice)
}

// ---------- OTCDeskRepository tests ----------

func TestOTCDeskRepository_SaveAndLatest(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewOTCDeskRepository(pool)
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, domain.ErrOTCDataNotFound)

	saved, err := repo.Save(ctx, domain.OTCDeskData{USDCost: 1540.5, NGNCost: 0, DeskSpread: -2.25, UpdatedBy: "desk"})
	require.NoError(t, err)

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Equal(t, saved.ID, got.ID)
	require.Equal(t, 1540.5, got.USDCost)
	require.Equal(t, -2.25, got.DeskSpread)
	require.Equal(t, "desk", got.UpdatedBy)
}

// ---------- CalculationLogRepository tests ----------

func TestCalculationLogRepository_InsertAndRecent(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCalculationLogRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, domain.CalculationLog{Level: domain.LogInfo, Message: "Starting FX rate calculation"}))
	require.NoError(t, repo.Insert(ctx, domain.CalculationLog{
		Level:   domain.LogError,
		Message: "All FX rate sources failed - no fallback available",
		Context: map[string]any{"alert_type": domain.AlertFailsafeTriggered},
	}))

	all, err := repo.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)

	errorsOnly, err := repo.Recent(ctx, domain.LogError, 10)
	require.NoError(t, err)
	require.Len(t, errorsOnly, 1)
	require.Equal(t, domain.AlertFailsafeTriggered, errorsOnly[0].Context["alert_type"])
}
