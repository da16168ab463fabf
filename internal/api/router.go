package api

import (
	"net/http"

	_ "ngnfx/docs"
	"ngnfx/internal/adapters"
	"ngnfx/internal/config"
	"ngnfx/internal/metrics"
	"ngnfx/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, auth config.Auth, limiter adapters.RateLimitStore, m *metrics.Registry) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(cors.New(cors.Options{
		AllowedOrigins: auth.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", apiKeyHeader},
	}).Handler)

	router.Handle("/metrics", m.Handler())
	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	publicKey := APIKey(auth.PublicKeys())

	router.Route("/api", func(r chi.Router) {
		r.With(publicKey, IPAllowList(auth.IPWhitelist), RateLimit(limiter, m)).
			Get("/fx/rate", rateHandler.GetRate)
		r.With(publicKey).Get("/fx/rate/cached", rateHandler.GetCachedRate)
		r.With(publicKey).Get("/fx/history", rateHandler.GetHistory)

		r.With(CronAuth(auth.CronSecret)).Get("/cron/update-rates", rateHandler.CronUpdate)

		r.Route("/fx/internal", func(r chi.Router) {
			r.Use(APIKey(auth.InternalAPIKeys))
			r.Post("/crypto-rates", rateHandler.SubmitCryptoRates)
			r.Get("/crypto-rates", rateHandler.GetLatestCryptoRates)
			r.Post("/otc-desk", rateHandler.SubmitOTCDesk)
			r.Get("/otc-desk", rateHandler.GetLatestOTCDesk)
			r.Get("/logs", rateHandler.GetRecentLogs)
		})
	})
	return router
}
