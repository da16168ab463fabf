package rate

import (
	"context"
	"fmt"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"
	"ngnfx/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type engineState string

const (
	stateCollecting    engineState = "collecting"
	stateBaselining    engineState = "baselining"
	stateEnriching     engineState = "enriching"
	stateComposing     engineState = "composing"
	statePersisting    engineState = "persisting"
	stateDone          engineState = "done"
	stateErrorFallback engineState = "error_fallback"
	stateFailed        engineState = "failed"
)

// CryptoOutcome is the result of the crypto-implied enrichment. Err is set when the layer is skipped.
type CryptoOutcome struct {
	Rate domain.CryptoRate
	Err  error
}

func (o CryptoOutcome) OK() bool { return o.Err == nil }

// OTCOutcome is the result of the OTC desk enrichment. It never fails; missing data yields defaults.
type OTCOutcome struct {
	Desk   domain.OTCDeskData
	Status domain.OTCStatus
}

// Engine runs one full rate calculation cycle.
type Engine struct {
	collector    *Collector
	baseline     *BaselineCalculator
	crypto       *CryptoImpliedCalculator
	liquidity    *LiquidityAdjuster
	fallback     *FallbackResolver
	externalRepo adapters.ExternalRateRepository
	calcRepo     adapters.CalculationRepository
	cache        adapters.LatestRateCache
	logger       *CalculationLogger
	metrics      *metrics.Registry
	now          func() time.Time
}

// Calculate runs Collecting → Baselining → Enriching → Composing → Persisting. A cycle is not
// interrupted by cancellation of ctx once started.
func (e *Engine) Calculate(ctx context.Context) (domain.FinalRate, error) {
	ctx = context.WithoutCancel(ctx)
	cycleID := uuid.New()
	log := logrus.WithField("cycle_id", cycleID.String())

	e.logger.Info(ctx, "Starting FX rate calculation", map[string]any{"cycle_id": cycleID.String()})

	// STEP 1: collecting quotes from every source
	log.WithField("state", stateCollecting).Debug("Collecting external rates")
	attempts := e.collector.Collect(ctx)
	if len(attempts) > 0 {
		if err := e.externalRepo.SaveBatch(ctx, cycleID, attempts); err != nil {
			log.WithError(err).Error("Failed to persist external rate attempts")
		}
	}

	valid := domain.ValidRates(attempts)
	if len(valid) == 0 {
		return e.degrade(ctx, cycleID, stateCollecting, domain.OTCUnavailable, domain.ErrNoValidRates)
	}

	// STEP 2: blending the valid quotes
	log.WithField("state", stateBaselining).Debug("Calculating baseline")
	baseline, err := e.baseline.Calculate(valid)
	if err != nil {
		return e.degrade(ctx, cycleID, stateBaselining, domain.OTCCalculationFailed, err)
	}

	// STEP 3: crypto and OTC enrichment run side by side; neither can fail the cycle
	log.WithField("state", stateEnriching).Debug("Enriching baseline")
	crypto, otc := e.enrich(ctx)
	spread := e.liquidity.Spread(otc.Desk.USDCost, baseline.Rate)

	// STEP 4: composing the published rate
	log.WithField("state", stateComposing).Debug("Composing final rate")
	components := domain.RateComponents{
		Baseline:           baseline.Rate,
		LiquiditySpread:    spread.Clamped,
		LiquiditySpreadRaw: spread.Raw,
		DeskSpread:         otc.Desk.DeskSpread,
	}
	if crypto.OK() {
		implied := crypto.Rate.Rate
		components.CryptoImplied = &implied
	}

	final := ComposeFinalRate(components, e.now())
	final.ID = cycleID
	final.BaselineSources = baseline.Sources
	final.OTCStatus = otc.Status
	final.RawSources = attempts

	if !domain.IsPositiveFinite(final.FinalUSDNGNRate) {
		return e.degrade(ctx, cycleID, stateComposing, domain.OTCValidationFailed,
			fmt.Errorf("%w: %v", domain.ErrInvalidFinalRate, final.FinalUSDNGNRate))
	}

	// STEP 5: persisting; a storage failure does not hide a computed rate from the caller
	log.WithField("state", statePersisting).Debug("Persisting final rate")
	if saveErr := e.calcRepo.Save(ctx, final); saveErr != nil {
		log.WithError(saveErr).Error("Failed to persist rate calculation")
	} else if e.cache != nil {
		e.cache.Set(final)
	}

	e.metrics.ObserveCalculation(string(final.CalculationMethod), final.BaselineRate, final.FinalUSDNGNRate)
	e.logger.Info(ctx, "FX rate calculation completed", map[string]any{
		"cycle_id":          cycleID.String(),
		"final_rate":        final.FinalUSDNGNRate,
		"method":            final.CalculationMethod,
		"sources_used":      len(valid),
		"sources_attempted": len(attempts),
		"crypto_implied":    crypto.OK(),
		"otc_status":        final.OTCStatus,
		"liquidity_spread":  final.LiquiditySpread,
		"crypto_premium":    final.CryptoPremium,
		"state":             stateDone,
	})
	return final, nil
}

func (e *Engine) enrich(ctx context.Context) (CryptoOutcome, OTCOutcome) {
	var crypto CryptoOutcome
	var otc OTCOutcome

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rate, err := e.crypto.Calculate(gctx)
		crypto = CryptoOutcome{Rate: rate, Err: err}
		if err != nil {
			logrus.WithError(err).Info("Crypto-implied rate unavailable, omitting premium layer")
		}
		return nil
	})
	g.Go(func() error {
		desk, status := e.liquidity.DeskData(gctx)
		otc = OTCOutcome{Desk: desk, Status: status}
		return nil
	})
	_ = g.Wait()

	return crypto, otc
}

// degrade moves the cycle into the fallback state. Fallback rates are returned but not persisted.
func (e *Engine) degrade(ctx context.Context, cycleID uuid.UUID, from engineState, otcStatus domain.OTCStatus, cause error) (domain.FinalRate, error) {
	e.logger.Warn(ctx, "FX rate calculation falling back", map[string]any{
		"cycle_id": cycleID.String(),
		"state":    stateErrorFallback,
		"from":     from,
		"error":    cause.Error(),
	})

	fb, err := e.fallback.Resolve(ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{"cycle_id": cycleID.String(), "state": stateFailed}).
			WithError(err).Error("FX rate calculation failed")
		return domain.FinalRate{}, fmt.Errorf("%w (cause: %v)", err, cause)
	}

	e.metrics.ObserveCalculation(string(domain.MethodFallback), fb.Rate, fb.Rate)
	return domain.FinalRate{
		ID:                cycleID,
		BaselineRate:      fb.Rate,
		FinalUSDNGNRate:   fb.Rate,
		Timestamp:         e.now(),
		CalculationMethod: domain.MethodFallback,
		BaselineSources:   []string{},
		OTCStatus:         otcStatus,
		FallbackSource:    fb.Source,
	}, nil
}

type EngineDeps struct {
	Collector    *Collector
	Baseline     *BaselineCalculator
	Crypto       *CryptoImpliedCalculator
	Liquidity    *LiquidityAdjuster
	Fallback     *FallbackResolver
	ExternalRepo adapters.ExternalRateRepository
	CalcRepo     adapters.CalculationRepository
	Cache        adapters.LatestRateCache
	Logger       *CalculationLogger
	Metrics      *metrics.Registry
}

func NewEngine(deps EngineDeps) *Engine {
	return &Engine{
		collector:    deps.Collector,
		baseline:     deps.Baseline,
		crypto:       deps.Crypto,
		liquidity:    deps.Liquidity,
		fallback:     deps.Fallback,
		externalRepo: deps.ExternalRepo,
		calcRepo:     deps.CalcRepo,
		cache:        deps.Cache,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		now:          time.Now,
	}
}
