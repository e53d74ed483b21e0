package service

import (
	"context"
	"strings"
	"time"

	"github.com/guttosm/cryptopulse/internal/cache"
	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// CryptoService defines the query operations exposed to the HTTP layer.
//
// Each operation is cache-aside: look the key up, on a miss run the single
// window query against the price store, derive the result, write it back, and
// return it. A hit performs zero store queries. There is no single-flight
// guard; concurrent misses for the same key may both compute and both write,
// which wastes work but cannot corrupt state since identical inputs produce
// identical values.
type CryptoService interface {
	// NormalizedRanges returns all symbols observed in the window ranked by
	// normalized price range, descending. A nil dateFrom means the epoch, a
	// nil dateTo means the moment of the call.
	NormalizedRanges(ctx context.Context, dateFrom, dateTo *time.Time) ([]models.NormalizedRange, error)

	// HighestNormalizedRange returns the top-ranked symbol for the single day
	// [day, day+1). Returns ErrEmptyResult when nothing was observed that day.
	HighestNormalizedRange(ctx context.Context, day time.Time) (models.NormalizedRange, error)

	// StatisticsForSymbol returns min/max/oldest/newest for one symbol over
	// the window. The symbol is matched case-insensitively. Returns
	// ErrUnsupportedSymbol when the symbol has no observations in the window.
	StatisticsForSymbol(ctx context.Context, symbol string, dateFrom, dateTo *time.Time) (models.SymbolStatistic, error)
}

type cryptoService struct {
	repo  storage.PricesRepository
	cache cache.ResultCache
	now   func() time.Time // indirection for deterministic tests
}

func NewCryptoService(repo storage.PricesRepository, resultCache cache.ResultCache) CryptoService {
	return &cryptoService{repo: repo, cache: resultCache, now: time.Now}
}

var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// resolveWindow applies the default bounds: missing from means the epoch,
// missing to means "now" at call time. The cache key is derived from the
// literal inputs before defaulting, so an open-ended window keeps its own key.
func (s *cryptoService) resolveWindow(dateFrom, dateTo *time.Time) (time.Time, time.Time) {
	from := epoch
	if dateFrom != nil {
		from = *dateFrom
	}
	to := s.now().UTC()
	if dateTo != nil {
		to = *dateTo
	}
	return from, to
}

func (s *cryptoService) NormalizedRanges(ctx context.Context, dateFrom, dateTo *time.Time) ([]models.NormalizedRange, error) {
	key := cache.KeyForNormalizedRange(dateFrom, dateTo)

	cached, hit, err := s.cache.GetNormalizedRanges(ctx, key)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	from, to := s.resolveWindow(dateFrom, dateTo)
	logger.L().Info().Str("key", key).Time("from", from).Time("to", to).Msg("normalized range cache miss, querying price store")

	summaries, err := s.repo.SummarizeWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	ranked := RankNormalizedRanges(summaries)
	if err := s.cache.SetNormalizedRanges(ctx, key, ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

func (s *cryptoService) HighestNormalizedRange(ctx context.Context, day time.Time) (models.NormalizedRange, error) {
	from := day
	to := day.AddDate(0, 0, 1)

	// Same key construction as NormalizedRanges for [day, day+1), so a prior
	// ranked-list call for that range is reused here and vice versa.
	key := cache.KeyForNormalizedRange(&from, &to)

	cached, hit, err := s.cache.GetNormalizedRanges(ctx, key)
	if err != nil {
		return models.NormalizedRange{}, err
	}
	if hit {
		if len(cached) == 0 {
			return models.NormalizedRange{}, ErrEmptyResult
		}
		return cached[0], nil
	}

	logger.L().Info().Str("key", key).Time("day", day).Msg("highest normalized range cache miss, querying price store")

	summaries, err := s.repo.SummarizeWindow(ctx, from, to)
	if err != nil {
		return models.NormalizedRange{}, err
	}

	ranked := RankNormalizedRanges(summaries)
	if len(ranked) == 0 {
		// Nothing observed that day; surface a defined error and leave the
		// cache untouched.
		return models.NormalizedRange{}, ErrEmptyResult
	}

	if err := s.cache.SetNormalizedRanges(ctx, key, ranked); err != nil {
		return models.NormalizedRange{}, err
	}
	return ranked[0], nil
}

func (s *cryptoService) StatisticsForSymbol(ctx context.Context, symbol string, dateFrom, dateTo *time.Time) (models.SymbolStatistic, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := cache.KeyForStatistic(symbol, dateFrom, dateTo)

	cached, hit, err := s.cache.GetStatistic(ctx, key)
	if err != nil {
		return models.SymbolStatistic{}, err
	}
	if hit {
		return cached, nil
	}

	from, to := s.resolveWindow(dateFrom, dateTo)
	logger.L().Info().Str("key", key).Str("symbol", symbol).Time("from", from).Time("to", to).Msg("statistics cache miss, querying price store")

	summaries, err := s.repo.SummarizeWindow(ctx, from, to)
	if err != nil {
		return models.SymbolStatistic{}, err
	}

	stat, err := StatisticForSymbol(symbol, summaries)
	if err != nil {
		return models.SymbolStatistic{}, err
	}

	if err := s.cache.SetStatistic(ctx, key, stat); err != nil {
		return models.SymbolStatistic{}, err
	}
	return stat, nil
}
