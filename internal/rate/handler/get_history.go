package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"ngnfx/internal/domain"

	"github.com/sirupsen/logrus"
)

type HistoryResponse struct {
	Data   []domain.FinalRate `json:"data"`
	Count  int                `json:"count" example:"12"`
	Period string             `json:"period" example:"24h"`
}

// GetHistory godoc
// @Summary Rate history
// @Description Lists persisted calculations of the last N hours, newest first
// @Tags Rates
// @Produce json
// @Param x-api-key header string true "API key"
// @Param hours query int false "Look-back window in hours, at most 8760" default(24)
// @Param limit query int false "Max rows, capped at 1000" default(100)
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fx/history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	hours, err := queryInt(r, "hours")
	if err != nil {
		writeError(w, http.StatusBadRequest, "hours must be a positive integer")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	hours, limit, err = h.validator.HistoryWindow(hours, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rates, err := h.service.History(r.Context(), hours, limit)
	if err != nil {
		msg := "Failed to fetch history"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "hours": hours, "limit": limit}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	if rates == nil {
		rates = []domain.FinalRate{}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Data:   rates,
		Count:  len(rates),
		Period: fmt.Sprintf("%dh", hours),
	})
}

// queryInt returns 0 for a missing parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
