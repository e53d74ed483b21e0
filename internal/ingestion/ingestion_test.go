package ingestion

import (
	"context"
	"database/sql"
	"testing"

	"github.com/guttosm/cryptopulse/internal/storage"
)

// overrideRepoCtor swaps the repository constructor for the test and restores
// it afterwards.
func overrideRepoCtor(t *testing.T, repo storage.PricesRepository) {
	t.Helper()
	orig := repoCtor
	repoCtor = func(_ *sql.DB) storage.PricesRepository { return repo }
	t.Cleanup(func() { repoCtor = orig })
}

func TestProcessDirectory_HappyPath(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "BTC_values.csv", "timestamp,symbol,price\n1641009600000,BTC,46813.21\n1641013200000,BTC,46979.61\n")
	writeTempFile(t, dir, "eth_values.csv", "timestamp,symbol,price\n1641009600000,ETH,3715.32\n")
	writeTempFile(t, dir, "notes.txt", "ignored")

	repo := newFakeRepo()
	overrideRepoCtor(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, 2, false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	rows := 0
	for _, b := range repo.batches {
		rows += len(b)
	}
	if rows != 3 {
		t.Fatalf("want 3 rows persisted got %d", rows)
	}
	if len(repo.upserts) != 2 {
		t.Fatalf("want 2 ingestion log entries got %v", repo.upserts)
	}
	seen := map[string]bool{}
	for _, u := range repo.upserts {
		seen[u] = true
	}
	// Symbol is derived from the filename prefix and upper-cased.
	if !seen["BTC_values.csv:BTC"] || !seen["eth_values.csv:ETH"] {
		t.Fatalf("unexpected log entries: %v", repo.upserts)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("no deletes expected got %v", repo.deleted)
	}
}

func TestProcessDirectory_SkipsAlreadyIngested(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "BTC_values.csv", "timestamp,symbol,price\n1641009600000,BTC,46813.21\n")

	repo := newFakeRepo()
	repo.ingested["BTC_values.csv"] = true
	overrideRepoCtor(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, 1, false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.batches) != 0 || len(repo.upserts) != 0 {
		t.Fatalf("expected file to be skipped, got batches=%d upserts=%v", len(repo.batches), repo.upserts)
	}
}

func TestProcessDirectory_ForceReingests(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "BTC_values.csv", "timestamp,symbol,price\n1641009600000,BTC,46813.21\n")

	repo := newFakeRepo()
	repo.ingested["BTC_values.csv"] = true
	overrideRepoCtor(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, 1, true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "BTC" {
		t.Fatalf("expected delete of BTC, got %v", repo.deleted)
	}
	if len(repo.batches) != 1 {
		t.Fatalf("expected re-ingest, got %d batches", len(repo.batches))
	}
	if len(repo.upserts) != 1 || repo.upserts[0] != "BTC_values.csv:BTC" {
		t.Fatalf("unexpected log entries: %v", repo.upserts)
	}
}

func TestProcessDirectory_NoFiles(t *testing.T) {
	repo := newFakeRepo()
	overrideRepoCtor(t, repo)

	if err := ProcessDirectory(context.Background(), t.TempDir(), nil, 1, false); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestProcessDirectory_MalformedFileFailsRun(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "BTC_values.csv", "timestamp,symbol,price\n1641009600000,BTC,not-a-price\n")

	repo := newFakeRepo()
	overrideRepoCtor(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, 1, false); err == nil {
		t.Fatalf("expected error for malformed file")
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("failed file must not be logged as ingested: %v", repo.upserts)
	}
}
