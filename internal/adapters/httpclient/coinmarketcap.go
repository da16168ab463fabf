package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"ngnfx/internal/domain"
)

const CoinMarketCapSourceName = "CoinMarketCap"

var ErrMissingAPIKey = errors.New("api key not configured")

// CoinMarketCapSource converts 1 USD to NGN through the price conversion API.
type CoinMarketCapSource struct {
	client *jsonClient
	apiKey string
}

type coinMarketCapResponse struct {
	Data json.RawMessage `json:"data"`
}

type coinMarketCapConversion struct {
	Quote struct {
		NGN struct {
			Price *float64 `json:"price"`
		} `json:"NGN"`
	} `json:"quote"`
}

func (s *CoinMarketCapSource) Name() string { return CoinMarketCapSourceName }

func (s *CoinMarketCapSource) FetchRate(ctx context.Context) (domain.ExternalRate, error) {
	if s.apiKey == "" {
		return domain.ExternalRate{}, sourceError(s.Name(), ErrMissingAPIKey)
	}

	var body coinMarketCapResponse
	query := url.Values{"amount": {"1"}, "symbol": {"USD"}, "convert": {"NGN"}}
	headers := map[string]string{"X-CMC_PRO_API_KEY": s.apiKey}
	if err := s.client.getJSON(ctx, "/v2/tools/price-conversion", query, headers, &body); err != nil {
		return domain.ExternalRate{}, sourceError(s.Name(), err)
	}

	conv, err := parseConversion(body.Data)
	if err != nil {
		return domain.ExternalRate{}, sourceError(s.Name(), err)
	}
	if conv.Quote.NGN.Price == nil {
		return domain.ExternalRate{}, sourceError(s.Name(), errMissingField("data.quote.NGN.price"))
	}
	return successRate(s.Name(), *conv.Quote.NGN.Price)
}

// parseConversion accepts both shapes of data: a single object, or an array when
// the symbol matches several assets.
func parseConversion(raw json.RawMessage) (coinMarketCapConversion, error) {
	var conv coinMarketCapConversion
	if len(raw) == 0 {
		return conv, errMissingField("data")
	}
	if raw[0] == '[' {
		var list []coinMarketCapConversion
		if err := json.Unmarshal(raw, &list); err != nil {
			return conv, fmt.Errorf("failed to decode data array: %w", err)
		}
		if len(list) == 0 {
			return conv, errMissingField("data[0]")
		}
		return list[0], nil
	}
	if err := json.Unmarshal(raw, &conv); err != nil {
		return conv, fmt.Errorf("failed to decode data: %w", err)
	}
	return conv, nil
}

func NewCoinMarketCapSource(opts Options, apiKey string) *CoinMarketCapSource {
	return &CoinMarketCapSource{client: newJSONClient(opts), apiKey: apiKey}
}
