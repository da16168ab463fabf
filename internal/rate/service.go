package rate

import (
	"context"
	"fmt"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"
)

// Service serves persisted engine data and records internal submissions.
type Service struct {
	calcRepo   adapters.CalculationRepository
	cryptoRepo adapters.CryptoRateRepository
	otcRepo    adapters.OTCDeskRepository
	logRepo    adapters.CalculationLogRepository
	now        func() time.Time
}

func (s *Service) History(ctx context.Context, hours, limit int) ([]domain.FinalRate, error) {
	since := s.now().Add(-time.Duration(hours) * time.Hour)
	rates, err := s.calcRepo.History(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate history: %w", err)
	}
	return rates, nil
}

func (s *Service) LatestCalculation(ctx context.Context) (domain.FinalRate, error) {
	return s.calcRepo.Latest(ctx)
}

func (s *Service) SubmitCryptoRates(ctx context.Context, data domain.InternalCryptoData) (domain.InternalCryptoData, error) {
	data.Timestamp = s.now()
	return s.cryptoRepo.Save(ctx, data)
}

func (s *Service) LatestCryptoRates(ctx context.Context) (domain.InternalCryptoData, error) {
	return s.cryptoRepo.Latest(ctx)
}

func (s *Service) SubmitOTCDesk(ctx context.Context, data domain.OTCDeskData) (domain.OTCDeskData, error) {
	data.Timestamp = s.now()
	return s.otcRepo.Save(ctx, data)
}

func (s *Service) LatestOTCDesk(ctx context.Context) (domain.OTCDeskData, error) {
	return s.otcRepo.Latest(ctx)
}

func (s *Service) RecentLogs(ctx context.Context, level domain.LogLevel, limit int) ([]domain.CalculationLog, error) {
	logs, err := s.logRepo.Recent(ctx, level, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculation logs: %w", err)
	}
	return logs, nil
}

func NewService(
	calcRepo adapters.CalculationRepository,
	cryptoRepo adapters.CryptoRateRepository,
	otcRepo adapters.OTCDeskRepository,
	logRepo adapters.CalculationLogRepository,
) *Service {
	return &Service{calcRepo: calcRepo, cryptoRepo: cryptoRepo, otcRepo: otcRepo, logRepo: logRepo, now: time.Now}
}
