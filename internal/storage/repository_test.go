package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

func newMockRepo(t *testing.T) (*pricesRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &pricesRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

const summarizeRegex = `SELECT DISTINCT symbol,\s+MIN\(price\) OVER \(PARTITION BY symbol\)`

func TestSummarizeWindow_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	from := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"symbol", "min_price", "max_price", "oldest_price", "newest_price"}).
		AddRow("BTC", "33276.59", "47722.66", "46813.21", "38415.79").
		AddRow("DOGE", "0.17", "0.25", "0.2", "0.22")

	mock.ExpectQuery(summarizeRegex).WithArgs(from, to).WillReturnRows(rows)

	out, err := repo.SummarizeWindow(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 summaries got %d", len(out))
	}
	if out[0].Symbol != "BTC" || !out[0].Min.Equal(decimal.RequireFromString("33276.59")) ||
		!out[0].Max.Equal(decimal.RequireFromString("47722.66")) ||
		!out[0].Oldest.Equal(decimal.RequireFromString("46813.21")) ||
		!out[0].Newest.Equal(decimal.RequireFromString("38415.79")) {
		t.Fatalf("unexpected BTC summary: %+v", out[0])
	}
	if out[1].Symbol != "DOGE" || !out[1].Newest.Equal(decimal.RequireFromString("0.22")) {
		t.Fatalf("unexpected DOGE summary: %+v", out[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSummarizeWindow_EmptyWindow(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	from := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(summarizeRegex).WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "min_price", "max_price", "oldest_price", "newest_price"}))

	out, err := repo.SummarizeWindow(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want no summaries got %+v", out)
	}
}

func TestInsertPricePointsBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`SET LOCAL synchronous_commit = OFF`).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(`COPY "price_points"`)
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0)) // final flush
	mock.ExpectCommit()

	points := []models.PricePoint{
		{Symbol: "BTC", ObservedAt: time.UnixMilli(1641009600000).UTC(), Price: decimal.RequireFromString("46813.21")},
		{Symbol: "BTC", ObservedAt: time.UnixMilli(1641013200000).UTC(), Price: decimal.RequireFromString("46979.61")},
	}

	if err := repo.InsertPricePointsBatch(points); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasIngestionForFile(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM ingestion_log WHERE filename = \$1\)`).
		WithArgs("BTC_values.csv").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasIngestionForFile("BTC_values.csv")
	if err != nil || !ok {
		t.Fatalf("want true,nil got %v,%v", ok, err)
	}
}

func TestUpsertIngestionLog(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`INSERT INTO ingestion_log`).
		WithArgs("BTC_values.csv", "BTC", 180).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpsertIngestionLog("BTC_values.csv", "BTC", 180); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestDeletePricePointsBySymbol(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(`DELETE FROM price_points WHERE symbol = \$1`).
		WithArgs("BTC").
		WillReturnResult(sqlmock.NewResult(0, 180))

	if err := repo.DeletePricePointsBySymbol("BTC"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
