package handler

import (
	"errors"
	"net/http"

	"ngnfx/internal/domain"
	"ngnfx/internal/rate"

	"github.com/sirupsen/logrus"
)

// SubmitOTCDesk godoc
// @Summary Submit OTC desk costs
// @Description Records the desk's USD acquisition cost and spread used by the liquidity layer
// @Tags Internal
// @Accept json
// @Produce json
// @Param x-api-key header string true "Internal API key"
// @Param request body rate.OTCSubmission true "Desk costs"
// @Success 200 {object} SubmissionResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fx/internal/otc-desk [post]
func (h *Handler) SubmitOTCDesk(w http.ResponseWriter, r *http.Request) {
	var req rate.OTCSubmission
	if err := decodeBody(w, r, submissionMaxBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.validator.ValidateOTC(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.service.SubmitOTCDesk(r.Context(), data)
	if err != nil {
		msg := "Failed to update OTC desk rates"
		logrus.WithError(err).WithField("handler", "SubmitOTCDesk").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, SubmissionResponse{
		Success: true,
		Message: "OTC desk rates updated successfully",
		ID:      saved.ID,
	})
}

// GetLatestOTCDesk godoc
// @Summary Latest OTC desk costs
// @Tags Internal
// @Produce json
// @Param x-api-key header string true "Internal API key"
// @Success 200 {object} domain.OTCDeskData
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fx/internal/otc-desk [get]
func (h *Handler) GetLatestOTCDesk(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.LatestOTCDesk(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrOTCDataNotFound) {
			writeError(w, http.StatusNotFound, "no otc desk rates submitted yet")
			return
		}
		msg := "Failed to fetch OTC desk rates"
		logrus.WithError(err).WithField("handler", "GetLatestOTCDesk").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
