package dto

import "github.com/shopspring/decimal"

// NormalizedRangeResponse is one entry of the ranked list returned by
// GET /api/v1/cryptos/normalized-range and the single object returned by
// the /highest variant.
//
// Fields match the API contract and may differ from internal domain models.
// This keeps the API surface decoupled from business logic.
type NormalizedRangeResponse struct {
	Symbol          string          `json:"symbol" example:"BTC"`
	NormalizedPrice decimal.Decimal `json:"normalized_price" example:"0.43124"`
}

// StatisticResponse is the JSON structure returned by
// GET /api/v1/cryptos/{symbol}/statistics.
type StatisticResponse struct {
	Symbol string          `json:"symbol" example:"BTC"`
	Min    decimal.Decimal `json:"min" example:"33276.59"`
	Max    decimal.Decimal `json:"max" example:"47722.66"`
	Oldest decimal.Decimal `json:"oldest" example:"46813.21"`
	Newest decimal.Decimal `json:"newest" example:"38415.79"`
}
