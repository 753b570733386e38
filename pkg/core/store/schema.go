package store

import (
	"context"
	"fmt"
)

// EnsureSchema creates every table the engine reads or writes. Idempotent;
// safe to run at every bootstrap.
func EnsureSchema(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			ticker  TEXT PRIMARY KEY,
			name    TEXT NOT NULL,
			country TEXT NOT NULL DEFAULT 'USA'
		)`,
		`CREATE TABLE IF NOT EXISTS facts (
			ticker      TEXT NOT NULL,
			metric      TEXT NOT NULL,
			fiscal_year INT  NOT NULL,
			value       DOUBLE PRECISION NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (ticker, metric, fiscal_year)
		)`,
		`CREATE TABLE IF NOT EXISTS industry_betas (
			bucket             TEXT PRIMARY KEY,
			industry           TEXT NOT NULL,
			unlevered_beta     DOUBLE PRECISION NOT NULL,
			cash_adjusted_beta DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bucket_members (
			ticker TEXT NOT NULL,
			bucket TEXT NOT NULL REFERENCES industry_betas(bucket),
			PRIMARY KEY (ticker, bucket)
		)`,
		`CREATE TABLE IF NOT EXISTS weight_factors (
			kind   TEXT NOT NULL,
			factor TEXT NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (kind, factor)
		)`,
		`CREATE TABLE IF NOT EXISTS risk_free_rates (
			country TEXT NOT NULL,
			year    INT  NOT NULL,
			rate    DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (country, year)
		)`,
		`CREATE TABLE IF NOT EXISTS implied_erp (
			year INT PRIMARY KEY,
			rate DOUBLE PRECISION NOT NULL,
			note TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS country_risk_premiums (
			country TEXT NOT NULL,
			year    INT  NOT NULL,
			rate    DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (country, year)
		)`,
		`CREATE TABLE IF NOT EXISTS marginal_tax_rates (
			country TEXT PRIMARY KEY,
			rate    DOUBLE PRECISION NOT NULL,
			note    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS index_price_movements (
			index_name TEXT NOT NULL,
			year       INT  NOT NULL,
			change     DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (index_name, year)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
