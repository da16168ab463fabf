package rate

import (
	"errors"
	"strings"

	"ngnfx/internal/domain"
)

var (
	ErrNoRatePath          = errors.New("at least one rate path must be provided")
	ErrOTCFieldsRequired   = errors.New("usd_cost and desk_spread are required")
	ErrNegativeValue       = errors.New("rate values must be positive numbers")
	ErrInvalidHistoryHours = errors.New("hours must be a positive integer no greater than 8760")
	ErrInvalidHistoryLimit = errors.New("limit must be a positive integer")
)

const (
	DefaultHistoryHours = 24
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 1000
	MaxHistoryHours     = 24 * 365
	defaultUpdatedBy    = "system"
)

// CryptoSubmission is an internal crypto price report as received from the desk.
type CryptoSubmission struct {
	USDTNGNBuy   *float64 `json:"usdt_ngn_buy"`
	USDTNGNSell  *float64 `json:"usdt_ngn_sell"`
	USDTUSDRate  *float64 `json:"usdt_usd_rate"`
	BTCUSDTPrice *float64 `json:"btc_usdt_price"`
	BTCNGNPrice  *float64 `json:"btc_ngn_price"`
}

type OTCSubmission struct {
	USDCost    *float64 `json:"usd_cost"`
	NGNCost    *float64 `json:"ngn_cost"`
	DeskSpread *float64 `json:"desk_spread"`
	UpdatedBy  string   `json:"updated_by"`
}

type SubmissionValidator struct{}

// ValidateCrypto requires at least one path anchor and applies defaults.
func (v *SubmissionValidator) ValidateCrypto(s CryptoSubmission) (domain.InternalCryptoData, error) {
	if s.USDTNGNSell == nil && s.BTCNGNPrice == nil {
		return domain.InternalCryptoData{}, ErrNoRatePath
	}
	for _, p := range []*float64{s.USDTNGNBuy, s.USDTNGNSell, s.USDTUSDRate, s.BTCUSDTPrice, s.BTCNGNPrice} {
		if p != nil && !domain.IsPositiveFinite(*p) {
			return domain.InternalCryptoData{}, ErrNegativeValue
		}
	}

	usdtUSD := 1.0
	if s.USDTUSDRate != nil {
		usdtUSD = *s.USDTUSDRate
	}
	return domain.InternalCryptoData{
		USDTNGNBuy:   s.USDTNGNBuy,
		USDTNGNSell:  s.USDTNGNSell,
		USDTUSDRate:  &usdtUSD,
		BTCUSDTPrice: s.BTCUSDTPrice,
		BTCNGNPrice:  s.BTCNGNPrice,
	}, nil
}

// ValidateOTC requires usd_cost and desk_spread; desk_spread may be negative.
func (v *SubmissionValidator) ValidateOTC(s OTCSubmission) (domain.OTCDeskData, error) {
	if s.USDCost == nil || s.DeskSpread == nil {
		return domain.OTCDeskData{}, ErrOTCFieldsRequired
	}
	if *s.USDCost < 0 || (*s.USDCost != 0 && !domain.IsPositiveFinite(*s.USDCost)) {
		return domain.OTCDeskData{}, ErrNegativeValue
	}

	data := domain.OTCDeskData{
		USDCost:    *s.USDCost,
		DeskSpread: *s.DeskSpread,
		UpdatedBy:  strings.TrimSpace(s.UpdatedBy),
	}
	if s.NGNCost != nil {
		data.NGNCost = *s.NGNCost
	}
	if data.UpdatedBy == "" {
		data.UpdatedBy = defaultUpdatedBy
	}
	return data, nil
}

// HistoryWindow clamps the history query, applying defaults for zero values.
func (v *SubmissionValidator) HistoryWindow(hours, limit int) (int, int, error) {
	if hours < 0 || hours > MaxHistoryHours {
		return 0, 0, ErrInvalidHistoryHours
	}
	if limit < 0 {
		return 0, 0, ErrInvalidHistoryLimit
	}
	if hours == 0 {
		hours = DefaultHistoryHours
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return hours, min(limit, MaxHistoryLimit), nil
}

func NewValidator() *SubmissionValidator {
	return &SubmissionValidator{}
}
