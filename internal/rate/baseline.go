package rate

import (
	"fmt"
	"strings"

	"ngnfx/internal/domain"
)

const DefaultStablecoinWeight = 2.0

// Baseline is the blended market rate and the sources that produced it.
type Baseline struct {
	Rate    float64
	Sources []string
}

// BaselineCalculator blends valid quotes, weighting stablecoin pairs against the rest.
type BaselineCalculator struct {
	stablecoinWeight float64
}

func (c *BaselineCalculator) Calculate(rates []domain.ExternalRate) (Baseline, error) {
	valid := domain.ValidRates(rates)
	if len(valid) == 0 {
		return Baseline{}, domain.ErrNoValidRates
	}

	var stable, other []float64
	sources := make([]string, 0, len(valid))
	for _, r := range valid {
		sources = append(sources, r.Source)
		if IsStablecoinSource(r.Source) {
			stable = append(stable, r.USDNGNRate)
		} else {
			other = append(other, r.USDNGNRate)
		}
	}

	var value float64
	switch {
	case len(stable) > 0 && len(other) > 0:
		w := c.stablecoinWeight
		value = (mean(stable)*w + mean(other)) / (w + 1)
	case len(stable) > 0:
		value = mean(stable)
	default:
		value = mean(other)
	}

	value = round2(value)
	if !domain.IsPositiveFinite(value) {
		return Baseline{}, fmt.Errorf("%w: %v", domain.ErrInvalidBaseline, value)
	}
	return Baseline{Rate: value, Sources: sources}, nil
}

// IsStablecoinSource reports whether a source quotes a USD-pegged stablecoin pair.
func IsStablecoinSource(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "usdt") || strings.Contains(n, "usdc")
}

func NewBaselineCalculator(stablecoinWeight float64) *BaselineCalculator {
	if stablecoinWeight <= 0 {
		stablecoinWeight = DefaultStablecoinWeight
	}
	return &BaselineCalculator{stablecoinWeight: stablecoinWeight}
}
