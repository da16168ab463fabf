package rate

import (
	"context"
	"errors"
	"sync"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"
	"ngnfx/internal/metrics"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const DefaultSourceTimeout = 5 * time.Second

type sourceResult struct {
	index int
	rate  domain.ExternalRate
}

// Collector queries every registered source concurrently. Each request has its own timeout
// and one failing source never aborts the others.
type Collector struct {
	sources []adapters.RateSource
	timeout time.Duration
	metrics *metrics.Registry
	now     func() time.Time
}

// Collect returns one attempt per source in registration order. Failed attempts are tagged
// with status failed or timeout and a zero rate, so callers must filter with domain.ValidRates.
func (c *Collector) Collect(ctx context.Context) []domain.ExternalRate {
	if len(c.sources) == 0 {
		return nil
	}

	// STEP 1: queue source indexes for the workers
	workQueue := make(chan int, len(c.sources))
	for i := range c.sources {
		workQueue <- i
	}
	close(workQueue)

	// STEP 2: fan out
	resultsCh := make(chan sourceResult, len(c.sources))

	var wg sync.WaitGroup
	for i := 0; i < min(numWorkers, len(c.sources)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workQueue {
				resultsCh <- sourceResult{index: idx, rate: c.fetch(ctx, c.sources[idx])}
			}
		}()
	}

	wg.Wait()
	close(resultsCh)

	// STEP 3: fan in, keeping registration order
	attempts := make([]domain.ExternalRate, len(c.sources))
	for res := range resultsCh {
		attempts[res.index] = res.rate
	}
	return attempts
}

// fetch never returns an error: the failure is recorded on the attempt itself.
func (c *Collector) fetch(ctx context.Context, source adapters.RateSource) domain.ExternalRate {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := c.now()
	rate, err := source.FetchRate(reqCtx)
	elapsed := c.now().Sub(started)

	attempt := domain.ExternalRate{
		Source:         source.Name(),
		Timestamp:      started,
		ResponseTimeMs: elapsed.Milliseconds(),
	}

	switch {
	case err != nil:
		attempt.Status = domain.SourceFailed
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			attempt.Status = domain.SourceTimeout
		}
		attempt.Error = err.Error()
		logrus.WithFields(logrus.Fields{"source": attempt.Source, "status": attempt.Status}).
			Warnf("Source '%s' wasn't collected: %s", attempt.Source, err)
	case !domain.IsPositiveFinite(rate.USDNGNRate):
		attempt.Status = domain.SourceFailed
		attempt.Error = domain.ErrSourceUnavailable.Error() + ": invalid rate value"
		logrus.WithField("source", attempt.Source).Warnf("Source '%s' returned invalid rate %v", attempt.Source, rate.USDNGNRate)
	default:
		attempt.Status = domain.SourceSuccess
		attempt.USDNGNRate = rate.USDNGNRate
		if !rate.Timestamp.IsZero() {
			attempt.Timestamp = rate.Timestamp
		}
	}

	c.metrics.ObserveSource(attempt.Source, string(attempt.Status), elapsed.Seconds())
	return attempt
}

func NewCollector(sources []adapters.RateSource, timeout time.Duration, m *metrics.Registry) *Collector {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	return &Collector{sources: sources, timeout: timeout, metrics: m, now: time.Now}
}
