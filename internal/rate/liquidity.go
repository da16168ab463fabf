package rate

import (
	"context"
	"errors"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	DefaultLiquiditySpreadMin = -10.0
	DefaultLiquiditySpreadMax = 50.0
)

type LiquiditySpread struct {
	Raw     float64
	Clamped float64
}

// LiquidityAdjuster turns the OTC desk cost basis into a bounded spread over the baseline.
type LiquidityAdjuster struct {
	repo     adapters.OTCDeskRepository
	min, max float64
}

// DeskData returns the latest desk record. A missing or unreadable record yields zero defaults.
func (a *LiquidityAdjuster) DeskData(ctx context.Context) (domain.OTCDeskData, domain.OTCStatus) {
	desk, err := a.repo.Latest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrOTCDataNotFound) {
			logrus.WithError(err).Warn("Failed to read OTC desk data, using defaults")
		}
		return domain.OTCDeskData{}, domain.OTCUsingDefaults
	}
	if desk.USDCost == 0 {
		return desk, domain.OTCUsingDefaults
	}
	return desk, domain.OTCAvailable
}

func (a *LiquidityAdjuster) Spread(usdCost, baseline float64) LiquiditySpread {
	return CalculateLiquiditySpread(usdCost, baseline, a.min, a.max)
}

// CalculateLiquiditySpread clamps usdCost-baseline into [minSpread, maxSpread].
func CalculateLiquiditySpread(usdCost, baseline, minSpread, maxSpread float64) LiquiditySpread {
	raw := round2(usdCost - baseline)
	return LiquiditySpread{Raw: raw, Clamped: max(minSpread, min(maxSpread, raw))}
}

func NewLiquidityAdjuster(repo adapters.OTCDeskRepository, minSpread, maxSpread float64) *LiquidityAdjuster {
	return &LiquidityAdjuster{repo: repo, min: minSpread, max: maxSpread}
}
