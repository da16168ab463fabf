package handler

import (
	"errors"
	"net/http"

	"ngnfx/internal/domain"
	"ngnfx/internal/rate"

	"github.com/sirupsen/logrus"
)

const submissionMaxBytes = 1024

type SubmissionResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
	ID      int64  `json:"id" example:"42"`
}

// SubmitCryptoRates godoc
// @Summary Submit internal crypto prices
// @Description Records the desk's USDT and BTC quotes used for the crypto-implied rate
// @Tags Internal
// @Accept json
// @Produce json
// @Param x-api-key header string true "Internal API key"
// @Param request body rate.CryptoSubmission true "Crypto prices"
// @Success 200 {object} SubmissionResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fx/internal/crypto-rates [post]
func (h *Handler) SubmitCryptoRates(w http.ResponseWriter, r *http.Request) {
	var req rate.CryptoSubmission
	if err := decodeBody(w, r, submissionMaxBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.validator.ValidateCrypto(req)
	if err != nil {
		if errors.Is(err, rate.ErrNoRatePath) {
			writeError(w, http.StatusBadRequest, "At least one rate path must be provided")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.service.SubmitCryptoRates(r.Context(), data)
	if err != nil {
		msg := "Failed to update crypto rates"
		logrus.WithError(err).WithField("handler", "SubmitCryptoRates").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, SubmissionResponse{
		Success: true,
		Message: "Crypto rates updated successfully",
		ID:      saved.ID,
	})
}

// GetLatestCryptoRates godoc
// @Summary Latest internal crypto prices
// @Tags Internal
// @Produce json
// @Param x-api-key header string true "Internal API key"
// @Success 200 {object} domain.InternalCryptoData
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /fx/internal/crypto-rates [get]
func (h *Handler) GetLatestCryptoRates(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.LatestCryptoRates(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoCryptoData) {
			writeError(w, http.StatusNotFound, "no crypto rates submitted yet")
			return
		}
		msg := "Failed to fetch crypto rates"
		logrus.WithError(err).WithField("handler", "GetLatestCryptoRates").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
