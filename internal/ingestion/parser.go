package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// parseAndPersistFile opens, parses, and persists one *_values.csv file in batches.
//
// The expected shape is a comma-separated line of
//
//	timestamp,symbol,price
//
// where timestamp is epoch milliseconds. The first line of each file is a
// header and is skipped unconditionally. Any malformed data line fails the
// whole file.
//
// Parameters:
//   - ctx:    context for cancellation/timeouts.
//   - path:   file path.
//   - repo:   repository for DB insertion.
//   - batch:  batch size for inserts (e.g., 5000).
func parseAndPersistFile(ctx context.Context, path string, repo storage.PricesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable but we'll check explicitly

	// Header line is skipped unconditionally, whatever it contains.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return 0, fmt.Errorf("empty file")
		}
		return 0, fmt.Errorf("read header: %w", err)
	}

	// Parse rows streaming; flush batches to DB.
	buf := make([]models.PricePoint, 0, batch)
	lineNumber := 1 // header already read

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertPricePointsBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		// Enforce structure: exactly 3 columns. If not, fail the file.
		if len(rec) != 3 {
			return 0, fmt.Errorf("invalid column count on line %d: expected 3 got %d", lineNumber, len(rec))
		}

		p, err := recordToPricePoint(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		buf = append(buf, p)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	// Final flush
	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToPricePoint converts a single CSV record (already validated length==3)
// into a models.PricePoint.
//
// Column order:
//
//	0 timestamp → ObservedAt (epoch milliseconds, UTC)
//	1 symbol    → Symbol (upper-cased; the serving path relies on this)
//	2 price     → Price (decimal, must not be negative)
func recordToPricePoint(rec []string) (models.PricePoint, error) {
	var p models.PricePoint

	millis, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return p, fmt.Errorf("invalid timestamp: %v", err)
	}
	p.ObservedAt = time.UnixMilli(millis).UTC()

	symbol := strings.ToUpper(strings.TrimSpace(rec[1]))
	if symbol == "" {
		return p, fmt.Errorf("empty symbol")
	}
	p.Symbol = symbol

	price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
	if err != nil {
		return p, fmt.Errorf("invalid price: %v", err)
	}
	if price.IsNegative() {
		return p, fmt.Errorf("negative price: %s", price)
	}
	p.Price = price

	return p, nil
}
