//go:build integration
// +build integration

package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/cryptopulse/config"
	"github.com/guttosm/cryptopulse/internal/app"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "cryptopulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=cryptopulse sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "cryptopulse")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func startRedis(t *testing.T) (host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	terminate = func() { _ = c.Terminate(context.Background()) }
	return h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedForE2E(t *testing.T, db *sql.DB, day time.Time) {
	t.Helper()
	// BTC moves 100 -> 150 within the day, ETH stays flat.
	rows := []struct {
		symbol string
		at     time.Time
		price  string
	}{
		{"BTC", day.Add(1 * time.Hour), "100"},
		{"BTC", day.Add(12 * time.Hour), "150"},
		{"ETH", day.Add(2 * time.Hour), "2000"},
		{"ETH", day.Add(14 * time.Hour), "2000"},
	}
	for _, r := range rows {
		if _, err := db.Exec(
			`INSERT INTO price_points (symbol, observed_at, price) VALUES ($1,$2,$3)`,
			r.symbol, r.at, r.price,
		); err != nil {
			t.Fatalf("seed %s: %v", r.symbol, err)
		}
	}
}

func TestAPI_E2E_NormalizedRangeAndStatistics(t *testing.T) {
	dsn, pgHost, pgPort, termPG := startPG(t)
	defer termPG()
	redisHost, redisPort, termRedis := startRedis(t)
	defer termRedis()

	db := openAndMigrate(t, dsn)
	defer db.Close()

	day := time.Now().UTC().AddDate(0, 0, -2)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	seedForE2E(t, db, day)

	// Point application config at the containerized dependencies
	config.AppConfig.Postgres.Host = pgHost
	p, _ := nat.ParsePort(pgPort.Port())
	config.AppConfig.Postgres.Port = int(p)
	config.AppConfig.Postgres.User = "postgres"
	config.AppConfig.Postgres.Password = "postgres"
	config.AppConfig.Postgres.DBName = "cryptopulse"
	config.AppConfig.Postgres.SSLMode = "disable"
	config.AppConfig.Redis.Addr = fmt.Sprintf("%s:%s", redisHost, redisPort.Port())

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	dayParam := day.Format("2006-01-02")
	nextParam := day.AddDate(0, 0, 1).Format("2006-01-02")

	// Ranked normalized ranges over the seeded day: BTC 0.5 beats ETH 0.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/cryptos/normalized-range?date_from="+dayParam+"&date_to="+nextParam, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ranked status=%d body=%s", w.Code, w.Body.String())
	}
	var ranked []struct {
		Symbol          string `json:"symbol"`
		NormalizedPrice string `json:"normalized_price"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ranked); err != nil {
		t.Fatalf("ranked json: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Symbol != "BTC" || ranked[1].Symbol != "ETH" {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}
	if ranked[0].NormalizedPrice != "0.5" {
		t.Fatalf("unexpected BTC normalized price: %s", ranked[0].NormalizedPrice)
	}

	// Second call is served from Redis and must agree with the first.
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet,
		"/api/v1/cryptos/normalized-range?date_from="+dayParam+"&date_to="+nextParam, nil))
	if w2.Code != http.StatusOK || w2.Body.String() != w.Body.String() {
		t.Fatalf("cached response diverged: %s vs %s", w2.Body.String(), w.Body.String())
	}

	// Highest for the seeded day.
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, httptest.NewRequest(http.MethodGet,
		"/api/v1/cryptos/normalized-range/highest?date="+dayParam, nil))
	if w3.Code != http.StatusOK {
		t.Fatalf("highest status=%d body=%s", w3.Code, w3.Body.String())
	}
	var highest struct {
		Symbol string `json:"symbol"`
	}
	if err := json.Unmarshal(w3.Body.Bytes(), &highest); err != nil {
		t.Fatalf("highest json: %v", err)
	}
	if highest.Symbol != "BTC" {
		t.Fatalf("unexpected highest: %+v", highest)
	}

	// Statistics for a lower-cased symbol.
	w4 := httptest.NewRecorder()
	router.ServeHTTP(w4, httptest.NewRequest(http.MethodGet, "/api/v1/cryptos/btc/statistics", nil))
	if w4.Code != http.StatusOK {
		t.Fatalf("statistics status=%d body=%s", w4.Code, w4.Body.String())
	}
	var stat struct {
		Symbol string `json:"symbol"`
		Min    string `json:"min"`
		Max    string `json:"max"`
		Oldest string `json:"oldest"`
		Newest string `json:"newest"`
	}
	if err := json.Unmarshal(w4.Body.Bytes(), &stat); err != nil {
		t.Fatalf("statistics json: %v", err)
	}
	if stat.Symbol != "BTC" || stat.Min != "100" || stat.Max != "150" || stat.Oldest != "100" || stat.Newest != "150" {
		t.Fatalf("unexpected statistics: %+v", stat)
	}

	// Unknown symbol maps to 404.
	w5 := httptest.NewRecorder()
	router.ServeHTTP(w5, httptest.NewRequest(http.MethodGet, "/api/v1/cryptos/SHIB/statistics", nil))
	if w5.Code != http.StatusNotFound {
		t.Fatalf("unknown symbol status=%d body=%s", w5.Code, w5.Body.String())
	}

	// Empty day maps to 404 for highest.
	w6 := httptest.NewRecorder()
	router.ServeHTTP(w6, httptest.NewRequest(http.MethodGet,
		"/api/v1/cryptos/normalized-range/highest?date="+day.AddDate(0, 0, 5).Format("2006-01-02"), nil))
	if w6.Code != http.StatusNotFound {
		t.Fatalf("empty day status=%d body=%s", w6.Code, w6.Body.String())
	}
}
