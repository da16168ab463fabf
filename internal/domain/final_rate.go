package domain

import (
	"time"

	"github.com/google/uuid"
)

type CalculationMethod string

const (
	MethodFull3Layer            CalculationMethod = "full_3layer"
	MethodBaselineLiquidityOnly CalculationMethod = "baseline_liquidity_only"
	MethodFallback              CalculationMethod = "fallback"
)

type OTCStatus string

const (
	OTCAvailable         OTCStatus = "available"
	OTCUsingDefaults     OTCStatus = "using defaults"
	OTCUnavailable       OTCStatus = "unavailable"
	OTCCalculationFailed OTCStatus = "calculation_failed"
	OTCValidationFailed  OTCStatus = "validation_failed"
)

type FallbackSource string

const (
	FallbackCachedRate    FallbackSource = "cached_rate"
	FallbackCryptoImplied FallbackSource = "crypto_implied"
	FallbackLastBaseline  FallbackSource = "last_baseline"
	FallbackEmergencyRate FallbackSource = "emergency_rate"
)

// RateComponents are the inputs of the final rate composition.
type RateComponents struct {
	Baseline           float64
	CryptoImplied      *float64
	LiquiditySpread    float64
	LiquiditySpreadRaw float64
	DeskSpread         float64
}

type FinalRate struct {
	ID                 uuid.UUID         `json:"id"`
	BaselineRate       float64           `json:"baseline_rate"`
	CryptoImpliedRate  *float64          `json:"crypto_implied_rate"`
	CryptoPremium      float64           `json:"crypto_premium"`
	LiquiditySpread    float64           `json:"liquidity_spread"`
	LiquiditySpreadRaw float64           `json:"liquidity_spread_raw"`
	DeskSpread         float64           `json:"desk_spread"`
	FinalUSDNGNRate    float64           `json:"final_usd_ngn_rate"`
	Timestamp          time.Time         `json:"timestamp"`
	CalculationMethod  CalculationMethod `json:"calculation_method"`
	BaselineSources    []string          `json:"baseline_sources"`
	OTCStatus          OTCStatus         `json:"otc_status"`
	FallbackSource     FallbackSource    `json:"fallback_source,omitempty"`
	RawSources         []ExternalRate    `json:"raw_sources,omitempty"`
}
