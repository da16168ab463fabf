package rate

import (
	"context"
	"time"

	"ngnfx/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRateSource struct {
	mock.Mock
	name string
}

func (m *MockRateSource) Name() string { return m.name }

func (m *MockRateSource) FetchRate(ctx context.Context) (domain.ExternalRate, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.ExternalRate)
	return r, args.Error(1)
}

type MockExternalRateRepository struct{ mock.Mock }

func (m *MockExternalRateRepository) SaveBatch(ctx context.Context, cycleID uuid.UUID, rates []domain.ExternalRate) error {
	args := m.Called(ctx, cycleID, rates)
	return args.Error(0)
}

type MockCalculationRepository struct{ mock.Mock }

func (m *MockCalculationRepository) Save(ctx context.Context, rate domain.FinalRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockCalculationRepository) Latest(ctx context.Context) (domain.FinalRate, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.FinalRate)
	return r, args.Error(1)
}

func (m *MockCalculationRepository) History(ctx context.Context, since time.Time, limit int) ([]domain.FinalRate, error) {
	args := m.Called(ctx, since, limit)
	r, _ := args.Get(0).([]domain.FinalRate)
	return r, args.Error(1)
}

type MockCryptoRateRepository struct{ mock.Mock }

func (m *MockCryptoRateRepository) Save(ctx context.Context, data domain.InternalCryptoData) (domain.InternalCryptoData, error) {
	args := m.Called(ctx, data)
	r, _ := args.Get(0).(domain.InternalCryptoData)
	return r, args.Error(1)
}

func (m *MockCryptoRateRepository) Latest(ctx context.Context) (domain.InternalCryptoData, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.InternalCryptoData)
	return r, args.Error(1)
}

type MockOTCDeskRepository struct{ mock.Mock }

func (m *MockOTCDeskRepository) Save(ctx context.Context, data domain.OTCDeskData) (domain.OTCDeskData, error) {
	args := m.Called(ctx, data)
	r, _ := args.Get(0).(domain.OTCDeskData)
	return r, args.Error(1)
}

func (m *MockOTCDeskRepository) Latest(ctx context.Context) (domain.OTCDeskData, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.OTCDeskData)
	return r, args.Error(1)
}

type MockCalculationLogRepository struct{ mock.Mock }

func (m *MockCalculationLogRepository) Insert(ctx context.Context, entry domain.CalculationLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCalculationLogRepository) Recent(ctx context.Context, level domain.LogLevel, limit int) ([]domain.CalculationLog, error) {
	args := m.Called(ctx, level, limit)
	logs, _ := args.Get(0).([]domain.CalculationLog)
	return logs, args.Error(1)
}

type MockAlertNotifier struct{ mock.Mock }

func (m *MockAlertNotifier) Notify(ctx context.Context, alert domain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

type MockCryptoCalculator struct{ mock.Mock }

func (m *MockCryptoCalculator) Calculate(ctx context.Context) (domain.CryptoRate, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.CryptoRate)
	return r, args.Error(1)
}

func ptr(v float64) *float64 { return &v }
