package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// normalizedPriceScale is the number of fractional digits kept in normalized
// price ratios (satoshi-style precision).
const normalizedPriceScale = 8

// NormalizedPrice computes (max - min) / min rounded half-to-even at
// normalizedPriceScale. A zero min yields exactly zero rather than a
// division error.
func NormalizedPrice(min, max decimal.Decimal) decimal.Decimal {
	if min.IsZero() {
		return decimal.Zero
	}
	// Divide with guard digits, then apply bankers rounding at the final scale.
	return max.Sub(min).DivRound(min, normalizedPriceScale+8).RoundBank(normalizedPriceScale)
}

// RankNormalizedRanges computes the normalized price range of each summary
// and returns them sorted descending. The sort is stable, so summaries with
// equal ratios keep their input order. The result is always a permutation of
// the input; an empty input yields an empty (non-nil) list and callers that
// need the highest entry must handle that case themselves.
func RankNormalizedRanges(summaries []models.SymbolSummary) []models.NormalizedRange {
	ranked := make([]models.NormalizedRange, 0, len(summaries))
	for _, s := range summaries {
		ranked = append(ranked, models.NormalizedRange{
			Symbol:          s.Symbol,
			NormalizedPrice: NormalizedPrice(s.Min, s.Max),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NormalizedPrice.GreaterThan(ranked[j].NormalizedPrice)
	})

	return ranked
}

// StatisticForSymbol projects the summary matching symbol into a
// SymbolStatistic. The symbol must already be upper-cased; the store
// normalizes symbols to uppercase at load time, so the match is exact.
func StatisticForSymbol(symbol string, summaries []models.SymbolSummary) (models.SymbolStatistic, error) {
	for _, s := range summaries {
		if s.Symbol == symbol {
			return models.SymbolStatistic{
				Symbol: s.Symbol,
				Min:    s.Min,
				Max:    s.Max,
				Oldest: s.Oldest,
				Newest: s.Newest,
			}, nil
		}
	}
	return models.SymbolStatistic{}, unsupportedSymbol(symbol)
}
