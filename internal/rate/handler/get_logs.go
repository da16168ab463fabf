package handler

import (
	"net/http"

	"ngnfx/internal/domain"
	"ngnfx/internal/rate"

	"github.com/sirupsen/logrus"
)

const defaultLogsLimit = 50

type LogsResponse struct {
	Data  []domain.CalculationLog `json:"data"`
	Count int                     `json:"count" example:"3"`
}

// GetRecentLogs godoc
// @Summary Engine log rows
// @Description Newest calculation log rows, optionally filtered by level
// @Tags Internal
// @Produce json
// @Param x-api-key header string true "Internal API key"
// @Param level query string false "info, warning or error"
// @Param limit query int false "Max rows, capped at 1000" default(50)
// @Success 200 {object} LogsResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fx/internal/logs [get]
func (h *Handler) GetRecentLogs(w http.ResponseWriter, r *http.Request) {
	level := domain.LogLevel(r.URL.Query().Get("level"))
	switch level {
	case "", domain.LogInfo, domain.LogWarning, domain.LogError:
	default:
		writeError(w, http.StatusBadRequest, "level must be one of info, warning, error")
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	if limit == 0 {
		limit = defaultLogsLimit
	}
	limit = min(limit, rate.MaxHistoryLimit)

	logs, err := h.service.RecentLogs(r.Context(), level, limit)
	if err != nil {
		msg := "Failed to fetch calculation logs"
		logrus.WithError(err).WithField("handler", "GetRecentLogs").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	if logs == nil {
		logs = []domain.CalculationLog{}
	}
	writeJSON(w, http.StatusOK, LogsResponse{Data: logs, Count: len(logs)})
}
