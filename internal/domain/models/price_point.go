package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint represents a single historical price observation for a
// cryptocurrency symbol. Rows are written once at load time and never
// updated or deleted by the serving path.
//
// CSV column order in the *_values.csv input files:
//  1. ObservedAt (epoch milliseconds)
//  2. Symbol
//  3. Price
type PricePoint struct {
	Symbol     string          // Uppercase symbol (e.g., "BTC")
	ObservedAt time.Time       // Observation timestamp (UTC)
	Price      decimal.Decimal // Exact price; never negative
}
