package rate

import (
	"context"
	"sync"
	"time"

	"ngnfx/internal/domain"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultCalculationInterval = 5 * time.Minute

// RateCalculator runs one rate calculation cycle.
type RateCalculator interface {
	Calculate(ctx context.Context) (domain.FinalRate, error)
}

// Scheduler periodically runs the engine in-process, next to the cron endpoint.
type Scheduler struct {
	calculator RateCalculator
	interval   time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		final, calcErr := s.calculator.Calculate(jobCtx)
		if calcErr != nil {
			logrus.Errorf("Rate calculation job %s failed: %v", execID, calcErr)
			return
		}
		logrus.WithFields(logrus.Fields{"exec_id": execID, "cycle_id": final.ID.String()}).
			Infof("Rate calculation job finished: %.2f (%s)", final.FinalUSDNGNRate, final.CalculationMethod)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(calculator RateCalculator, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultCalculationInterval
	}
	return &Scheduler{calculator: calculator, interval: interval}
}
