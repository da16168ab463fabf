package handler

import (
	"errors"
	"net/http"

	"ngnfx/internal/domain"

	"github.com/sirupsen/logrus"
)

const cachedRateCacheControl = "public, s-maxage=60, stale-while-revalidate=300"

type CachedRateResponse struct {
	domain.FinalRate
	Cached bool   `json:"cached" example:"true"`
	Source string `json:"source" example:"database"`
}

// GetCachedRate godoc
// @Summary Latest stored rate
// @Description Returns the most recent persisted calculation without contacting any source
// @Tags Rates
// @Produce json
// @Param x-api-key header string true "API key"
// @Success 200 {object} CachedRateResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fx/rate/cached [get]
func (h *Handler) GetCachedRate(w http.ResponseWriter, r *http.Request) {
	latest, err := h.service.LatestCalculation(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCalculationNotFound) {
			writeError(w, http.StatusNotFound, "No cached rate available")
			return
		}
		msg := "Failed to fetch cached rate"
		logrus.WithError(err).WithField("handler", "GetCachedRate").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.Header().Set("Cache-Control", cachedRateCacheControl)
	writeJSON(w, http.StatusOK, CachedRateResponse{FinalRate: latest, Cached: true, Source: "database"})
}
