package httpclient

import (
	"context"
	"net/url"

	"ngnfx/internal/domain"
)

const CryptoCompareSourceName = "CryptoCompare"

// CryptoCompareSource reads the USD/NGN spot price.
type CryptoCompareSource struct {
	client *jsonClient
}

type cryptoCompareResponse struct {
	NGN *float64 `json:"NGN"`
}

func (s *CryptoCompareSource) Name() string { return CryptoCompareSourceName }

func (s *CryptoCompareSource) FetchRate(ctx context.Context) (domain.ExternalRate, error) {
	var body cryptoCompareResponse
	query := url.Values{"fsym": {"USD"}, "tsyms": {"NGN"}}
	if err := s.client.getJSON(ctx, "/data/price", query, nil, &body); err != nil {
		return domain.ExternalRate{}, sourceError(s.Name(), err)
	}
	if body.NGN == nil {
		return domain.ExternalRate{}, sourceError(s.Name(), errMissingField("NGN"))
	}
	return successRate(s.Name(), *body.NGN)
}

func NewCryptoCompareSource(opts Options) *CryptoCompareSource {
	return &CryptoCompareSource{client: newJSONClient(opts)}
}
