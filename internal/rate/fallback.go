package rate

import (
	"context"
	"errors"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"
	"ngnfx/internal/metrics"

	"github.com/sirupsen/logrus"
)

const DefaultCacheMaxAge = 5 * time.Minute

const failsafeMessage = "All FX rate sources failed - no fallback available"

type cryptoRateCalculator interface {
	Calculate(ctx context.Context) (domain.CryptoRate, error)
}

// FallbackRate is a degraded rate together with the cascade step that produced it.
type FallbackRate struct {
	Rate   float64
	Source domain.FallbackSource
}

// FallbackResolver walks the cascade: fresh cached rate, crypto-implied rate,
// last known baseline and, when configured, the emergency rate.
type FallbackResolver struct {
	calculations  adapters.CalculationRepository
	cache         adapters.LatestRateCache
	crypto        cryptoRateCalculator
	logger        *CalculationLogger
	alerter       adapters.AlertNotifier
	metrics       *metrics.Registry
	maxCacheAge   time.Duration
	emergencyRate float64
	now           func() time.Time
}

func (f *FallbackResolver) Resolve(ctx context.Context) (FallbackRate, error) {
	// STEP 1: latest calculation, if still fresh
	latest, found := f.latestCalculation(ctx)
	if found && f.now().Sub(latest.Timestamp) <= f.maxCacheAge && domain.IsPositiveFinite(latest.FinalUSDNGNRate) {
		return f.resolved(latest.FinalUSDNGNRate, domain.FallbackCachedRate), nil
	}

	// STEP 2: crypto-implied rate, independent of the external sources
	crypto, err := f.crypto.Calculate(ctx)
	if err == nil && domain.IsPositiveFinite(crypto.Rate) {
		return f.resolved(crypto.Rate, domain.FallbackCryptoImplied), nil
	}
	if err != nil {
		logrus.WithError(err).Debug("Crypto-implied fallback unavailable")
	}

	// STEP 3: last known baseline of any age
	if found && domain.IsPositiveFinite(latest.BaselineRate) {
		return f.resolved(latest.BaselineRate, domain.FallbackLastBaseline), nil
	}

	if domain.IsPositiveFinite(f.emergencyRate) {
		f.logger.Warn(ctx, "Using configured emergency USD/NGN rate", map[string]any{"rate": f.emergencyRate})
		return f.resolved(f.emergencyRate, domain.FallbackEmergencyRate), nil
	}

	// STEP 4: nothing defensible left
	f.metrics.ObserveFallback("exhausted")
	alertCtx := map[string]any{"alert_type": domain.AlertFailsafeTriggered}
	f.logger.Error(ctx, failsafeMessage, alertCtx)
	if f.alerter != nil {
		alert := domain.Alert{Type: domain.AlertFailsafeTriggered, Message: failsafeMessage, Context: alertCtx, Timestamp: f.now()}
		if notifyErr := f.alerter.Notify(ctx, alert); notifyErr != nil {
			logrus.WithError(notifyErr).Error("Failed to send failsafe alert")
		}
	}
	return FallbackRate{}, domain.ErrNoFallbackAvailable
}

// latestCalculation reads the cache first, then the repository. It is called once per
// cascade and serves both the fresh-cache and the last-baseline steps.
func (f *FallbackResolver) latestCalculation(ctx context.Context) (domain.FinalRate, bool) {
	if f.cache != nil {
		if cached, ok := f.cache.Get(); ok {
			return cached, true
		}
	}
	latest, err := f.calculations.Latest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrCalculationNotFound) {
			logrus.WithError(err).Warn("Failed to read latest rate calculation for fallback")
		}
		return domain.FinalRate{}, false
	}
	return latest, true
}

func (f *FallbackResolver) resolved(rate float64, source domain.FallbackSource) FallbackRate {
	f.metrics.ObserveFallback(string(source))
	return FallbackRate{Rate: rate, Source: source}
}

type FallbackOption func(*FallbackResolver)

func WithMaxCacheAge(d time.Duration) FallbackOption {
	return func(f *FallbackResolver) {
		if d > 0 {
			f.maxCacheAge = d
		}
	}
}

func WithEmergencyRate(rate float64) FallbackOption {
	return func(f *FallbackResolver) { f.emergencyRate = rate }
}

func WithAlertNotifier(n adapters.AlertNotifier) FallbackOption {
	return func(f *FallbackResolver) { f.alerter = n }
}

func WithFallbackCache(c adapters.LatestRateCache) FallbackOption {
	return func(f *FallbackResolver) { f.cache = c }
}

func WithFallbackMetrics(m *metrics.Registry) FallbackOption {
	return func(f *FallbackResolver) { f.metrics = m }
}

func NewFallbackResolver(calculations adapters.CalculationRepository, crypto cryptoRateCalculator, logger *CalculationLogger, opts ...FallbackOption) *FallbackResolver {
	f := &FallbackResolver{
		calculations: calculations,
		crypto:       crypto,
		logger:       logger,
		maxCacheAge:  DefaultCacheMaxAge,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}
