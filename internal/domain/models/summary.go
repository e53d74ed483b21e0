package models

import "github.com/shopspring/decimal"

// SymbolSummary is the per-symbol reduction of all price points inside one
// date window, produced by the repository's window query.
//
// Only Min <= Max is guaranteed; Oldest and Newest are the prices at the
// earliest and latest timestamps in the window and need not be the extremes.
// All four values come from the same window's observations.
type SymbolSummary struct {
	Symbol string          `json:"symbol"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Oldest decimal.Decimal `json:"oldest"`
	Newest decimal.Decimal `json:"newest"`
}

// NormalizedRange pairs a symbol with its normalized price range
// (max - min) / min, a volatility metric used for ranking.
//
// swagger:model NormalizedRange
type NormalizedRange struct {
	Symbol          string          `json:"symbol" example:"BTC"`
	NormalizedPrice decimal.Decimal `json:"normalized_price" example:"0.43123423"`
}

// SymbolStatistic is the direct projection of one SymbolSummary returned to
// callers of the statistics operation.
//
// swagger:model SymbolStatistic
type SymbolStatistic struct {
	Symbol string          `json:"symbol" example:"BTC"`
	Min    decimal.Decimal `json:"min" example:"33276.59"`
	Max    decimal.Decimal `json:"max" example:"47722.66"`
	Oldest decimal.Decimal `json:"oldest" example:"46813.21"`
	Newest decimal.Decimal `json:"newest" example:"38415.79"`
}
