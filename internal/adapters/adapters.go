package adapters

import (
	"context"
	"time"

	"ngnfx/internal/domain"

	"github.com/google/uuid"
)

// RateSource is one external market-data vendor.
type RateSource interface {
	Name() string
	FetchRate(ctx context.Context) (domain.ExternalRate, error)
}

type ExternalRateRepository interface {
	SaveBatch(ctx context.Context, cycleID uuid.UUID, rates []domain.ExternalRate) error
}

type CalculationRepository interface {
	Save(ctx context.Context, rate domain.FinalRate) error
	Latest(ctx context.Context) (domain.FinalRate, error)
	History(ctx context.Context, since time.Time, limit int) ([]domain.FinalRate, error)
}

type CryptoRateRepository interface {
	Save(ctx context.Context, data domain.InternalCryptoData) (domain.InternalCryptoData, error)
	Latest(ctx context.Context) (domain.InternalCryptoData, error)
}

type OTCDeskRepository interface {
	Save(ctx context.Context, data domain.OTCDeskData) (domain.OTCDeskData, error)
	Latest(ctx context.Context) (domain.OTCDeskData, error)
}

type CalculationLogRepository interface {
	Insert(ctx context.Context, entry domain.CalculationLog) error
	Recent(ctx context.Context, level domain.LogLevel, limit int) ([]domain.CalculationLog, error)
}

type LatestRateCache interface {
	Get() (domain.FinalRate, bool)
	Set(rate domain.FinalRate)
}

// RateLimitStore counts requests per key inside a fixed window.
type RateLimitStore interface {
	Increment(ctx context.Context, key string) (bool, error)
}

type AlertNotifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}
