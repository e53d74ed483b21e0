package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// PricesRepository defines contract for DB operations.
type PricesRepository interface {
	InsertPricePointsBatch(points []models.PricePoint) error
	SummarizeWindow(ctx context.Context, from time.Time, to time.Time) ([]models.SymbolSummary, error)
	HasIngestionForFile(filename string) (bool, error)
	UpsertIngestionLog(filename string, symbol string, rowCount int) error
	DeletePricePointsBySymbol(symbol string) error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

// InsertPricePointsBatch inserts multiple price points into DB in a single transaction.
func (r *pricesRepository) InsertPricePointsBatch(points []models.PricePoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"price_points",
		"symbol",
		"observed_at",
		"price",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, p := range points {
		if _, err := stmt.Exec(p.Symbol, p.ObservedAt, p.Price); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// summarizeWindowQuery reduces all price points inside [from, to) to one row
// per symbol: min, max, and the prices at the earliest and latest timestamps.
// Symbols with zero observations in the window are simply absent from the
// result, never present with NULL fields.
const summarizeWindowQuery = `
	SELECT DISTINCT symbol,
		MIN(price) OVER (PARTITION BY symbol) AS min_price,
		MAX(price) OVER (PARTITION BY symbol) AS max_price,
		FIRST_VALUE(price) OVER (PARTITION BY symbol ORDER BY observed_at ASC
			ROWS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING) AS oldest_price,
		FIRST_VALUE(price) OVER (PARTITION BY symbol ORDER BY observed_at DESC
			ROWS BETWEEN UNBOUNDED PRECEDING AND UNBOUNDED FOLLOWING) AS newest_price
	FROM price_points
	WHERE observed_at >= $1 AND observed_at < $2
	ORDER BY symbol
`

// SummarizeWindow returns per-symbol price summaries for the window [from, to).
func (r *pricesRepository) SummarizeWindow(ctx context.Context, from time.Time, to time.Time) ([]models.SymbolSummary, error) {
	rows, err := r.db.QueryContext(ctx, summarizeWindowQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize window: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []models.SymbolSummary
	for rows.Next() {
		var s models.SymbolSummary
		if err := rows.Scan(&s.Symbol, &s.Min, &s.Max, &s.Oldest, &s.Newest); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summary rows: %w", err)
	}

	return summaries, nil
}

// HasIngestionForFile checks if an ingestion was already recorded for a given source file.
func (r *pricesRepository) HasIngestionForFile(filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a given source file.
func (r *pricesRepository) UpsertIngestionLog(filename string, symbol string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (filename, symbol, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (filename)
		DO UPDATE SET symbol = EXCLUDED.symbol,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, filename, symbol, rowCount)
	return err
}

// DeletePricePointsBySymbol removes all price points for a given symbol.
// Used by force mode before reprocessing a source file.
func (r *pricesRepository) DeletePricePointsBySymbol(symbol string) error {
	_, err := r.db.Exec(`DELETE FROM price_points WHERE symbol = $1`, symbol)
	return err
}
