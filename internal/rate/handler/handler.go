package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"ngnfx/internal/domain"
	"ngnfx/internal/rate"
)

type calculator interface {
	Calculate(ctx context.Context) (domain.FinalRate, error)
}

type service interface {
	History(ctx context.Context, hours, limit int) ([]domain.FinalRate, error)
	LatestCalculation(ctx context.Context) (domain.FinalRate, error)
	SubmitCryptoRates(ctx context.Context, data domain.InternalCryptoData) (domain.InternalCryptoData, error)
	LatestCryptoRates(ctx context.Context) (domain.InternalCryptoData, error)
	SubmitOTCDesk(ctx context.Context, data domain.OTCDeskData) (domain.OTCDeskData, error)
	LatestOTCDesk(ctx context.Context) (domain.OTCDeskData, error)
	RecentLogs(ctx context.Context, level domain.LogLevel, limit int) ([]domain.CalculationLog, error)
}

type validator interface {
	ValidateCrypto(s rate.CryptoSubmission) (domain.InternalCryptoData, error)
	ValidateOTC(s rate.OTCSubmission) (domain.OTCDeskData, error)
	HistoryWindow(hours, limit int) (int, int, error)
}

type Handler struct {
	calculator calculator
	service    service
	validator  validator
}

func NewRateHandler(calculator calculator, service service, validator validator) *Handler {
	return &Handler{calculator: calculator, service: service, validator: validator}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody reads a small JSON object and rejects unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
