package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"ngnfx/internal/domain"
)

const (
	BinanceUSDTSourceName = "Binance_USDT"
	BinanceUSDCSourceName = "Binance_USDC"
)

// BinanceSource reads the average price of a stablecoin/NGN pair.
type BinanceSource struct {
	client *jsonClient
	name   string
	symbol string
}

type binanceAvgPriceResponse struct {
	Mins  int    `json:"mins"`
	Price string `json:"price"`
}

func (s *BinanceSource) Name() string { return s.name }

func (s *BinanceSource) FetchRate(ctx context.Context) (domain.ExternalRate, error) {
	var body binanceAvgPriceResponse
	if err := s.client.getJSON(ctx, "/api/v3/avgPrice", url.Values{"symbol": {s.symbol}}, nil, &body); err != nil {
		return domain.ExternalRate{}, sourceError(s.name, err)
	}
	if body.Price == "" {
		return domain.ExternalRate{}, sourceError(s.name, errMissingField("price"))
	}
	price, err := strconv.ParseFloat(body.Price, 64)
	if err != nil {
		return domain.ExternalRate{}, sourceError(s.name, fmt.Errorf("failed to parse price %q: %w", body.Price, err))
	}
	return successRate(s.name, price)
}

func NewBinanceUSDTSource(opts Options) *BinanceSource {
	return &BinanceSource{client: newJSONClient(opts), name: BinanceUSDTSourceName, symbol: "USDTNGN"}
}

func NewBinanceUSDCSource(opts Options) *BinanceSource {
	return &BinanceSource{client: newJSONClient(opts), name: BinanceUSDCSourceName, symbol: "USDCNGN"}
}

func errMissingField(field string) error {
	return fmt.Errorf("missing field %q in response", field)
}
