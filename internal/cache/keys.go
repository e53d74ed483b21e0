package cache

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// KeyForNormalizedRange derives the deterministic cache key for a ranked
// normalized-range query from the literal (possibly nil) input dates.
// The fully open window maps to a fixed all-interval key so repeated
// "all time" queries share one entry.
func KeyForNormalizedRange(from, to *time.Time) string {
	if from == nil && to == nil {
		return "normalized_all_interval"
	}
	return fmt.Sprintf("normalized_%s_%s", formatDate(from), formatDate(to))
}

// KeyForStatistic derives the cache key for a single-symbol statistics query.
// Statistic keys always carry the statistic_ prefix so they can never collide
// with the normalized-range namespace, even for identical date ranges.
// The symbol must already be upper-cased by the caller.
func KeyForStatistic(symbol string, from, to *time.Time) string {
	if from == nil && to == nil {
		return fmt.Sprintf("statistic_%s_all_interval", symbol)
	}
	return fmt.Sprintf("statistic_%s_%s_%s", symbol, formatDate(from), formatDate(to))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.Format(dateLayout)
}
