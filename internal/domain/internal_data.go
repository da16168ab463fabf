package domain

import "time"

type CryptoMethod string

const (
	CryptoMethodUSDT CryptoMethod = "usdt_primary"
	CryptoMethodBTC  CryptoMethod = "btc_fallback"
)

// InternalCryptoData is a trade desk observation; every price is optional.
type InternalCryptoData struct {
	ID           int64     `json:"id"`
	USDTNGNBuy   *float64  `json:"usdt_ngn_buy"`
	USDTNGNSell  *float64  `json:"usdt_ngn_sell"`
	USDTUSDRate  *float64  `json:"usdt_usd_rate"`
	BTCUSDTPrice *float64  `json:"btc_usdt_price"`
	BTCNGNPrice  *float64  `json:"btc_ngn_price"`
	Timestamp    time.Time `json:"timestamp"`
}

// CryptoRate is a USD/NGN rate derived from internal crypto prices.
type CryptoRate struct {
	Rate      float64      `json:"rate"`
	Method    CryptoMethod `json:"method"`
	Timestamp time.Time    `json:"timestamp"`
}

type OTCDeskData struct {
	ID         int64     `json:"id"`
	USDCost    float64   `json:"usd_cost"`
	NGNCost    float64   `json:"ngn_cost"`
	DeskSpread float64   `json:"desk_spread"`
	UpdatedBy  string    `json:"updated_by"`
	Timestamp  time.Time `json:"timestamp"`
}
