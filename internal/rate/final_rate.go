package rate

import (
	"time"

	"ngnfx/internal/domain"
)

// ComposeFinalRate adds premium and spreads on top of the baseline. It performs no I/O.
func ComposeFinalRate(c domain.RateComponents, at time.Time) domain.FinalRate {
	method := domain.MethodBaselineLiquidityOnly
	var premium float64
	var implied *float64
	if c.CryptoImplied != nil {
		v := *c.CryptoImplied
		implied = &v
		premium = round2(v - c.Baseline)
		method = domain.MethodFull3Layer
	}

	return domain.FinalRate{
		BaselineRate:       c.Baseline,
		CryptoImpliedRate:  implied,
		CryptoPremium:      premium,
		LiquiditySpread:    c.LiquiditySpread,
		LiquiditySpreadRaw: c.LiquiditySpreadRaw,
		DeskSpread:         c.DeskSpread,
		FinalUSDNGNRate:    round2(c.Baseline + c.LiquiditySpread + premium + c.DeskSpread),
		Timestamp:          at,
		CalculationMethod:  method,
	}
}
