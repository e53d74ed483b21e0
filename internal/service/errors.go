package service

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSymbol is returned when statistics are requested for a symbol
// with no observations in the queried window. Not-found semantics; callers
// must never see a zero-filled result instead.
var ErrUnsupportedSymbol = errors.New("symbol not supported")

// ErrEmptyResult is returned when the highest normalized range is requested
// for a day with no observations at all.
var ErrEmptyResult = errors.New("no price data in the requested window")

func unsupportedSymbol(symbol string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedSymbol, symbol)
}
