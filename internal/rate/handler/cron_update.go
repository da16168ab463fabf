package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type CronUpdateResponse struct {
	Success   bool      `json:"success" example:"true"`
	Rate      float64   `json:"rate" example:"1565.5"`
	Timestamp time.Time `json:"timestamp" example:"2025-01-02T15:04:05Z"`
}

type CronFailedResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

// CronUpdate godoc
// @Summary Scheduled recalculation
// @Description Triggered by an external scheduler; runs one calculation cycle
// @Tags Cron
// @Produce json
// @Param Authorization header string true "Bearer <cron secret>"
// @Success 200 {object} CronUpdateResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} CronFailedResponse
// @Router /cron/update-rates [get]
func (h *Handler) CronUpdate(w http.ResponseWriter, r *http.Request) {
	log := logrus.WithField("handler", "CronUpdate")
	log.Info("Starting scheduled rate update")

	final, err := h.calculator.Calculate(r.Context())
	if err != nil {
		log.WithError(err).Error("Scheduled rate update failed")
		writeJSON(w, http.StatusInternalServerError, CronFailedResponse{Success: false, Error: err.Error()})
		return
	}

	log.WithField("final_rate", final.FinalUSDNGNRate).Info("Scheduled rate update completed")
	writeJSON(w, http.StatusOK, CronUpdateResponse{
		Success:   true,
		Rate:      final.FinalUSDNGNRate,
		Timestamp: final.Timestamp,
	})
}
