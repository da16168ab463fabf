package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ngnfx/internal/adapters"
	"ngnfx/internal/domain"
)

// CryptoImpliedCalculator derives USD/NGN from the latest internal crypto trade prices.
type CryptoImpliedCalculator struct {
	repo adapters.CryptoRateRepository
	now  func() time.Time
}

func (c *CryptoImpliedCalculator) Calculate(ctx context.Context) (domain.CryptoRate, error) {
	data, err := c.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoCryptoData) {
			return domain.CryptoRate{}, err
		}
		return domain.CryptoRate{}, fmt.Errorf("failed to read internal crypto rates: %w", err)
	}

	rate, method, err := ImpliedRate(data)
	if err != nil {
		return domain.CryptoRate{}, err
	}
	return domain.CryptoRate{Rate: rate, Method: method, Timestamp: c.now()}, nil
}

// ImpliedRate prefers the USDT path and falls back to the BTC cross.
func ImpliedRate(data domain.InternalCryptoData) (float64, domain.CryptoMethod, error) {
	if present(data.USDTNGNSell) && present(data.USDTUSDRate) {
		if v := round2(*data.USDTNGNSell / *data.USDTUSDRate); domain.IsPositiveFinite(v) {
			return v, domain.CryptoMethodUSDT, nil
		}
	}
	if present(data.BTCNGNPrice) && present(data.BTCUSDTPrice) {
		if v := round2(*data.BTCNGNPrice / *data.BTCUSDTPrice); domain.IsPositiveFinite(v) {
			return v, domain.CryptoMethodBTC, nil
		}
	}
	return 0, "", domain.ErrNoValidCryptoPath
}

func present(v *float64) bool {
	return v != nil && domain.IsPositiveFinite(*v)
}

func NewCryptoImpliedCalculator(repo adapters.CryptoRateRepository) *CryptoImpliedCalculator {
	return &CryptoImpliedCalculator{repo: repo, now: time.Now}
}
