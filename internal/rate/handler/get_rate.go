package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

const rateCacheControl = "public, s-maxage=30, stale-while-revalidate=60"

type rateFailedResponse struct {
	Error   string `json:"error" example:"Rate calculation failed"`
	Details string `json:"details" example:"all fx rate sources failed - no fallback available"`
}

// GetRate godoc
// @Summary Calculate the USD/NGN rate
// @Description Runs a full calculation cycle and returns the published rate with its components
// @Tags Rates
// @Produce json
// @Param x-api-key header string true "API key"
// @Success 200 {object} domain.FinalRate
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Failure 500 {object} rateFailedResponse
// @Router /fx/rate [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	final, err := h.calculator.Calculate(r.Context())
	if err != nil {
		logrus.WithError(err).WithField("handler", "GetRate").Error("Rate calculation failed")
		writeJSON(w, http.StatusInternalServerError, rateFailedResponse{
			Error:   "Rate calculation failed",
			Details: err.Error(),
		})
		return
	}

	w.Header().Set("Cache-Control", rateCacheControl)
	writeJSON(w, http.StatusOK, final)
}
