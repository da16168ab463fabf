package httpclient

import (
	"context"
	"net/url"

	"ngnfx/internal/domain"
)

const CoinGeckoSourceName = "CoinGecko_FX"

// CoinGeckoSource derives USD/NGN from the BTC price quoted in both currencies.
type CoinGeckoSource struct {
	client *jsonClient
}

type coinGeckoResponse struct {
	Bitcoin struct {
		USD *float64 `json:"usd"`
		NGN *float64 `json:"ngn"`
	} `json:"bitcoin"`
}

func (s *CoinGeckoSource) Name() string { return CoinGeckoSourceName }

func (s *CoinGeckoSource) FetchRate(ctx context.Context) (domain.ExternalRate, error) {
	var body coinGeckoResponse
	query := url.Values{"ids": {"bitcoin"}, "vs_currencies": {"usd,ngn"}}
	if err := s.client.getJSON(ctx, "/api/v3/simple/price", query, nil, &body); err != nil {
		return domain.ExternalRate{}, sourceError(s.Name(), err)
	}
	usd, ngn := body.Bitcoin.USD, body.Bitcoin.NGN
	if usd == nil || ngn == nil {
		return domain.ExternalRate{}, sourceError(s.Name(), errMissingField("bitcoin.usd/bitcoin.ngn"))
	}
	if *usd <= 0 {
		return domain.ExternalRate{}, sourceError(s.Name(), errMissingField("bitcoin.usd"))
	}
	return successRate(s.Name(), *ngn / *usd)
}

func NewCoinGeckoSource(opts Options) *CoinGeckoSource {
	return &CoinGeckoSource{client: newJSONClient(opts)}
}
