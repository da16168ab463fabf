package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ngnfx/internal/config"
	"ngnfx/internal/domain"
	"ngnfx/internal/metrics"
	"ngnfx/internal/rate"
	"ngnfx/internal/rate/handler"

	"github.com/stretchr/testify/require"
)

type fixedCalculator struct{ rate domain.FinalRate }

func (c fixedCalculator) Calculate(context.Context) (domain.FinalRate, error) { return c.rate, nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h := handler.NewRateHandler(
		fixedCalculator{rate: domain.FinalRate{FinalUSDNGNRate: 1565, CalculationMethod: domain.MethodFull3Layer}},
		rate.NewService(nil, nil, nil, nil),
		rate.NewValidator(),
	)
	auth := config.Auth{
		APIKeys:         []string{"public"},
		InternalAPIKeys: []string{"internal"},
		CronSecret:      "s3cret",
		CORSOrigins:     []string{"*"},
	}
	return NewRouter(h, auth, &stubStore{allowed: true}, metrics.New(nil))
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		want    int
	}{
		{name: "heartbeat", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "rate with key", method: http.MethodGet, path: "/api/fx/rate", headers: map[string]string{"x-api-key": "public"}, want: http.StatusOK},
		{name: "rate without key", method: http.MethodGet, path: "/api/fx/rate", want: http.StatusUnauthorized},
		{name: "internal key is not public", method: http.MethodGet, path: "/api/fx/rate", headers: map[string]string{"x-api-key": "internal"}, want: http.StatusUnauthorized},
		{name: "cron with bearer", method: http.MethodGet, path: "/api/cron/update-rates", headers: map[string]string{"Authorization": "Bearer s3cret"}, want: http.StatusOK},
		{name: "cron without bearer", method: http.MethodGet, path: "/api/cron/update-rates", want: http.StatusUnauthorized},
		{name: "internal with public key", method: http.MethodGet, path: "/api/fx/internal/otc-desk", headers: map[string]string{"x-api-key": "public"}, want: http.StatusUnauthorized},
		{name: "internal invalid body", method: http.MethodPost, path: "/api/fx/internal/otc-desk", headers: map[string]string{"x-api-key": "internal"}, want: http.StatusBadRequest},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", want: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, http.NoBody)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			require.Equal(t, tc.want, rr.Code)
		})
	}
}
