package httpclient

import (
	"context"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerSource short-circuits a vendor after repeated consecutive failures.
type BreakerSource struct {
	source adapters.RateSource
	cb     *gobreaker.CircuitBreaker
}

func (s *BreakerSource) Name() string { return s.source.Name() }

func (s *BreakerSource) FetchRate(ctx context.Context) (domain.ExternalRate, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.source.FetchRate(ctx)
	})
	if err != nil {
		return domain.ExternalRate{}, err
	}
	return res.(domain.ExternalRate), nil
}

type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

func WithBreaker(source adapters.RateSource, settings BreakerSettings) *BreakerSource {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	st := gobreaker.Settings{
		Name:        source.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithField("source", name).Warnf("Circuit breaker state changed from %s to %s", from, to)
		},
	}
	return &BreakerSource{source: source, cb: gobreaker.NewCircuitBreaker(st)}
}
