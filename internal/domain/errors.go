package domain

import "errors"

var (
	ErrSourceUnavailable   = errors.New("rate source unavailable")
	ErrNoValidRates        = errors.New("no valid rates available for baseline calculation")
	ErrInvalidBaseline     = errors.New("invalid baseline rate calculated")
	ErrNoCryptoData        = errors.New("no internal crypto data available")
	ErrNoValidCryptoPath   = errors.New("no valid crypto calculation path available")
	ErrOTCDataNotFound     = errors.New("otc desk data not found")
	ErrInvalidFinalRate    = errors.New("invalid final rate calculated")
	ErrNoFallbackAvailable = errors.New("all fx rate sources failed - no fallback available")
	ErrCalculationNotFound = errors.New("rate calculation not found")
)
