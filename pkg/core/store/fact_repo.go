package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"fundamental_metrics/pkg/models"
)

// FactRepo stores sparse annual series keyed by (ticker, metric, fiscal year).
//
// PutSeries is an upsert-only write: years absent from the incoming series are
// left untouched, so a previously computed value survives when its inputs
// later regress (last-known-good retention). Nothing here ever deletes rows.
type FactRepo struct{}

// NewFactRepo creates a new repository instance.
func NewFactRepo() *FactRepo {
	return &FactRepo{}
}

// GetSeries loads one (ticker, metric) series. An unknown pair yields an
// empty series, not an error; sparsity is normal.
func (r *FactRepo) GetSeries(ctx context.Context, ticker, metric string) (models.AnnualSeries, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT fiscal_year, value FROM facts WHERE ticker = $1 AND metric = $2`,
		ticker, metric)
	if err != nil {
		return nil, fmt.Errorf("failed to load series %s/%s: %w", ticker, metric, err)
	}
	defer rows.Close()

	series := models.AnnualSeries{}
	for rows.Next() {
		var year int
		var value float64
		if err := rows.Scan(&year, &value); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		series[year] = value
	}
	return series, rows.Err()
}

// SeriesBundle loads several metrics for one ticker in a single query.
func (r *FactRepo) SeriesBundle(ctx context.Context, ticker string, metrics []string) (map[string]models.AnnualSeries, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT metric, fiscal_year, value FROM facts WHERE ticker = $1 AND metric = ANY($2)`,
		ticker, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to load series bundle for %s: %w", ticker, err)
	}
	defer rows.Close()

	bundle := make(map[string]models.AnnualSeries, len(metrics))
	for rows.Next() {
		var metric string
		var year int
		var value float64
		if err := rows.Scan(&metric, &year, &value); err != nil {
			return nil, fmt.Errorf("failed to scan bundle row: %w", err)
		}
		if bundle[metric] == nil {
			bundle[metric] = models.AnnualSeries{}
		}
		bundle[metric][year] = value
	}
	return bundle, rows.Err()
}

// PutSeries upserts every year of the series. Batched; one round trip.
func (r *FactRepo) PutSeries(ctx context.Context, ticker, metric string, series models.AnnualSeries) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if len(series) == 0 {
		return nil
	}

	query := `
		INSERT INTO facts (ticker, metric, fiscal_year, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ticker, metric, fiscal_year)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`

	batch := &pgx.Batch{}
	now := time.Now()
	for year, value := range series {
		batch.Queue(query, ticker, metric, year, value, now)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for range series {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert %s/%s: %w", ticker, metric, err)
		}
	}
	return nil
}

// ListTickers returns every company known to the fact store.
func (r *FactRepo) ListTickers(ctx context.Context) ([]string, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT ticker FROM companies ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

// ListYears returns the distinct fiscal years with any fact for the ticker,
// ascending. Feeds the "Recent" resolution of the year-range parser.
func (r *FactRepo) ListYears(ctx context.Context, ticker string) ([]int, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT DISTINCT fiscal_year FROM facts WHERE ticker = $1 ORDER BY fiscal_year`, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to list years for %s: %w", ticker, err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// GetCompany looks up one company row.
func (r *FactRepo) GetCompany(ctx context.Context, ticker string) (models.Company, error) {
	pool := GetPool()
	if pool == nil {
		return models.Company{}, fmt.Errorf("database pool not initialized")
	}

	var c models.Company
	err := pool.QueryRow(ctx,
		`SELECT ticker, name, country FROM companies WHERE ticker = $1`, ticker).
		Scan(&c.Ticker, &c.Name, &c.Country)
	if err != nil {
		if err == pgx.ErrNoRows {
			return models.Company{}, fmt.Errorf("unknown company %s", ticker)
		}
		return models.Company{}, fmt.Errorf("failed to load company %s: %w", ticker, err)
	}
	return c, nil
}

// UpsertCompany registers or updates a company row.
func (r *FactRepo) UpsertCompany(ctx context.Context, c models.Company) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO companies (ticker, name, country)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker)
		DO UPDATE SET name = EXCLUDED.name, country = EXCLUDED.country;
	`, c.Ticker, c.Name, c.Country)
	if err != nil {
		return fmt.Errorf("failed to upsert company %s: %w", c.Ticker, err)
	}
	return nil
}
