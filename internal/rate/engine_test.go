package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sourcesOf(sources ...*MockRateSource) []adapters.RateSource {
	out := make([]adapters.RateSource, 0, len(sources))
	for _, s := range sources {
		out = append(out, s)
	}
	return out
}

type engineFixture struct {
	external *MockExternalRateRepository
	calcs    *MockCalculationRepository
	crypto   *MockCryptoRateRepository
	otc      *MockOTCDeskRepository
	logs     *MockCalculationLogRepository
	cache    *staticCache
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		external: new(MockExternalRateRepository),
		calcs:    new(MockCalculationRepository),
		crypto:   new(MockCryptoRateRepository),
		otc:      new(MockOTCDeskRepository),
		logs:     new(MockCalculationLogRepository),
		cache:    &staticCache{},
	}
	f.logs.On("Insert", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func (f *engineFixture) engine(sources ...*MockRateSource) *Engine {
	logger := NewCalculationLogger(f.logs)
	cryptoCalc := NewCryptoImpliedCalculator(f.crypto)
	return NewEngine(EngineDeps{
		Collector:    NewCollector(sourcesOf(sources...), time.Second, nil),
		Baseline:     NewBaselineCalculator(DefaultStablecoinWeight),
		Crypto:       cryptoCalc,
		Liquidity:    NewLiquidityAdjuster(f.otc, DefaultLiquiditySpreadMin, DefaultLiquiditySpreadMax),
		Fallback:     NewFallbackResolver(f.calcs, cryptoCalc, logger),
		ExternalRepo: f.external,
		CalcRepo:     f.calcs,
		Cache:        f.cache,
		Logger:       logger,
	})
}

func TestEngine_ThreeValidOneFailed(t *testing.T) {
	f := newEngineFixture()

	cc := newSource("CryptoCompare")
	cmc := newSource("CoinMarketCap")
	usdt := newSource("Binance_USDT")
	usdc := newSource("Binance_USDC")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 1500}, nil).Once()
	cmc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{}, errors.New("missing api key")).Once()
	usdt.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 1560}, nil).Once()
	usdc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 1550}, nil).Once()

	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.MatchedBy(func(rates []domain.ExternalRate) bool {
		if len(rates) != 4 {
			return false
		}
		return rates[0].Status == domain.SourceSuccess &&
			rates[1].Status == domain.SourceFailed &&
			rates[2].Status == domain.SourceSuccess &&
			rates[3].Status == domain.SourceSuccess
	})).Return(nil).Once()
	f.crypto.On("Latest", mock.Anything).Return(domain.InternalCryptoData{}, domain.ErrNoCryptoData).Once()
	f.otc.On("Latest", mock.Anything).Return(domain.OTCDeskData{USDCost: 1540, DeskSpread: 5}, nil).Once()
	f.calcs.On("Save", mock.Anything, mock.AnythingOfType("domain.FinalRate")).Return(nil).Once()

	got, err := f.engine(cc, cmc, usdt, usdc).Calculate(context.Background())

	require.NoError(t, err)
	// stable avg 1555, other 1500 → (3110+1500)/3
	require.Equal(t, 1536.67, got.BaselineRate)
	require.Equal(t, []string{"CryptoCompare", "Binance_USDT", "Binance_USDC"}, got.BaselineSources)
	require.Equal(t, 3.33, got.LiquiditySpreadRaw)
	require.Equal(t, 3.33, got.LiquiditySpread)
	require.Equal(t, 5.0, got.DeskSpread)
	require.Zero(t, got.CryptoPremium)
	require.Equal(t, 1545.0, got.FinalUSDNGNRate)
	require.Equal(t, domain.MethodBaselineLiquidityOnly, got.CalculationMethod)
	require.Equal(t, domain.OTCAvailable, got.OTCStatus)
	require.Len(t, got.RawSources, 4)

	cached, ok := f.cache.Get()
	require.True(t, ok)
	require.Equal(t, got.ID, cached.ID)

	f.external.AssertExpectations(t)
	f.calcs.AssertExpectations(t)
}

func TestEngine_Full3Layer(t *testing.T) {
	f := newEngineFixture()

	cc := newSource("CryptoCompare")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 1500}, nil).Once()

	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.crypto.On("Latest", mock.Anything).Return(domain.InternalCryptoData{USDTNGNSell: ptr(1550), USDTUSDRate: ptr(1)}, nil).Once()
	f.otc.On("Latest", mock.Anything).Return(domain.OTCDeskData{}, domain.ErrOTCDataNotFound).Once()
	f.calcs.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := f.engine(cc).Calculate(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.MethodFull3Layer, got.CalculationMethod)
	require.Equal(t, 50.0, got.CryptoPremium)
	// no desk data: raw spread is -1500, clamped to -10
	require.Equal(t, -1500.0, got.LiquiditySpreadRaw)
	require.Equal(t, -10.0, got.LiquiditySpread)
	require.Equal(t, 1540.0, got.FinalUSDNGNRate)
	require.Equal(t, domain.OTCUsingDefaults, got.OTCStatus)
}

func TestEngine_AllSourcesFailed_UsesFallback(t *testing.T) {
	f := newEngineFixture()

	cc := newSource("CryptoCompare")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{}, errors.New("boom")).Once()

	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.calcs.On("Latest", mock.Anything).Return(domain.FinalRate{
		BaselineRate:    1500,
		FinalUSDNGNRate: 1565,
		Timestamp:       time.Now().Add(-time.Minute),
	}, nil).Once()

	got, err := f.engine(cc).Calculate(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.MethodFallback, got.CalculationMethod)
	require.Equal(t, 1565.0, got.FinalUSDNGNRate)
	require.Equal(t, domain.OTCUnavailable, got.OTCStatus)
	require.Equal(t, domain.FallbackCachedRate, got.FallbackSource)
	f.calcs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.logs.AssertCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(e domain.CalculationLog) bool {
		return e.Level == domain.LogWarning
	}))
}

func TestEngine_FallbackExhausted(t *testing.T) {
	f := newEngineFixture()

	cc := newSource("CryptoCompare")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{}, errors.New("boom")).Once()

	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.calcs.On("Latest", mock.Anything).Return(domain.FinalRate{}, domain.ErrCalculationNotFound).Once()
	f.crypto.On("Latest", mock.Anything).Return(domain.InternalCryptoData{}, domain.ErrNoCryptoData).Once()

	_, err := f.engine(cc).Calculate(context.Background())

	require.ErrorIs(t, err, domain.ErrNoFallbackAvailable)
	f.logs.AssertCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(e domain.CalculationLog) bool {
		return e.Level == domain.LogError && e.Context["alert_type"] == domain.AlertFailsafeTriggered
	}))
}

func TestEngine_PersistenceFailureStillReturnsRate(t *testing.T) {
	f := newEngineFixture()

	cc := newSource("CryptoCompare")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 1500}, nil).Once()

	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	f.crypto.On("Latest", mock.Anything).Return(domain.InternalCryptoData{}, domain.ErrNoCryptoData).Once()
	f.otc.On("Latest", mock.Anything).Return(domain.OTCDeskData{USDCost: 1500}, nil).Once()
	f.calcs.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	got, err := f.engine(cc).Calculate(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1500.0, got.FinalUSDNGNRate)
	_, cached := f.cache.Get()
	require.False(t, cached)
}

func TestEngine_IgnoresCallerCancellation(t *testing.T) {
	f := newEngineFixture()

	cc := newSource("CryptoCompare")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 1500}, nil).Once()
	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.crypto.On("Latest", mock.Anything).Return(domain.InternalCryptoData{}, domain.ErrNoCryptoData).Once()
	f.otc.On("Latest", mock.Anything).Return(domain.OTCDeskData{}, domain.ErrOTCDataNotFound).Once()
	f.calcs.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := f.engine(cc).Calculate(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.MethodBaselineLiquidityOnly, got.CalculationMethod)
}

func TestEngine_InvalidFinalRate_FallsBackWithValidationFailed(t *testing.T) {
	f := newEngineFixture()

	cc := newSource("CryptoCompare")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 1500}, nil).Once()

	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.crypto.On("Latest", mock.Anything).Return(domain.InternalCryptoData{}, domain.ErrNoCryptoData).Once()
	// desk spread drags the composed rate to -3500
	f.otc.On("Latest", mock.Anything).Return(domain.OTCDeskData{USDCost: 1500, DeskSpread: -5000}, nil).Once()
	f.calcs.On("Latest", mock.Anything).Return(domain.FinalRate{
		BaselineRate:    1498,
		FinalUSDNGNRate: 1530,
		Timestamp:       time.Now().Add(-time.Minute),
	}, nil).Once()

	got, err := f.engine(cc).Calculate(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.MethodFallback, got.CalculationMethod)
	require.Equal(t, domain.OTCValidationFailed, got.OTCStatus)
	require.Equal(t, domain.FallbackCachedRate, got.FallbackSource)
	require.Equal(t, 1530.0, got.FinalUSDNGNRate)
	f.calcs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.logs.AssertCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(e domain.CalculationLog) bool {
		return e.Level == domain.LogWarning && e.Context["from"] == stateComposing
	}))
	_, cached := f.cache.Get()
	require.False(t, cached)
}

func TestEngine_BaselineFailure_FallsBackWithCalculationFailed(t *testing.T) {
	f := newEngineFixture()

	// valid quote, but it rounds to a zero baseline
	cc := newSource("CryptoCompare")
	cc.On("FetchRate", mock.Anything).Return(domain.ExternalRate{USDNGNRate: 0.001}, nil).Once()

	f.external.On("SaveBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.calcs.On("Latest", mock.Anything).Return(domain.FinalRate{}, domain.ErrCalculationNotFound).Once()
	f.crypto.On("Latest", mock.Anything).Return(domain.InternalCryptoData{USDTNGNSell: ptr(1552), USDTUSDRate: ptr(1)}, nil).Once()

	got, err := f.engine(cc).Calculate(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.MethodFallback, got.CalculationMethod)
	require.Equal(t, domain.OTCCalculationFailed, got.OTCStatus)
	require.Equal(t, domain.FallbackCryptoImplied, got.FallbackSource)
	require.Equal(t, 1552.0, got.FinalUSDNGNRate)
	f.calcs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.otc.AssertNotCalled(t, "Latest", mock.Anything)
	f.logs.AssertCalled(t, "Insert", mock.Anything, mock.MatchedBy(func(e domain.CalculationLog) bool {
		return e.Level == domain.LogWarning && e.Context["from"] == stateBaselining
	}))
}
