package domain

import (
	"math"
	"time"
)

type SourceStatus string

const (
	SourceSuccess SourceStatus = "success"
	SourceFailed  SourceStatus = "failed"
	SourceTimeout SourceStatus = "timeout"
)

// ExternalRate is a single vendor quote attempt. Failed attempts keep a zero rate.
type ExternalRate struct {
	Source         string       `json:"source"`
	USDNGNRate     float64      `json:"usd_ngn_rate"`
	Timestamp      time.Time    `json:"timestamp"`
	Status         SourceStatus `json:"status"`
	ResponseTimeMs int64        `json:"response_time_ms"`
	Error          string       `json:"error,omitempty"`
}

// IsValid reports whether the quote may feed the baseline.
func (r ExternalRate) IsValid() bool {
	return r.Status == SourceSuccess && IsPositiveFinite(r.USDNGNRate)
}

func IsPositiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ValidRates keeps only the quotes that may feed the baseline, preserving order.
func ValidRates(rates []ExternalRate) []ExternalRate {
	valid := make([]ExternalRate, 0, len(rates))
	for _, r := range rates {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	return valid
}
