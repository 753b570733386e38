package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"fundamental_metrics/pkg/core/scoring"
	"fundamental_metrics/pkg/models"
)

// Weight-set kinds in the weight_factors table.
const (
	WeightKindGrowth = "growth"
	WeightKindStddev = "stddev"
)

// ConfigRepo reads the configuration tables: rates, premiums, tax, betas,
// and weight factors. Read-mostly; only the weight setter mutates, on behalf
// of the admin surface.
type ConfigRepo struct{}

// NewConfigRepo creates a new repository instance.
func NewConfigRepo() *ConfigRepo {
	return &ConfigRepo{}
}

func yearSeries(ctx context.Context, query string, args ...any) (models.AnnualSeries, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate series: %w", err)
	}
	defer rows.Close()

	series := models.AnnualSeries{}
	for rows.Next() {
		var year int
		var value float64
		if err := rows.Scan(&year, &value); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		series[year] = value
	}
	return series, rows.Err()
}

// RiskFreeRates returns the yearly risk-free rate (percentage points) for the
// country, falling back to the USA curve for countries without one seeded.
func (r *ConfigRepo) RiskFreeRates(ctx context.Context, country string) (models.AnnualSeries, error) {
	return yearSeries(ctx,
		`SELECT year, rate FROM risk_free_rates WHERE country = $1`,
		riskFreeCountry(CanonicalCountry(country)))
}

// ImpliedERP returns the yearly implied equity risk premium (USA market).
func (r *ConfigRepo) ImpliedERP(ctx context.Context) (models.AnnualSeries, error) {
	return yearSeries(ctx, `SELECT year, rate FROM implied_erp`)
}

// CountryRiskPremium returns the yearly CRP for the country; missing years
// read as 0 downstream.
func (r *ConfigRepo) CountryRiskPremium(ctx context.Context, country string) (models.AnnualSeries, error) {
	return yearSeries(ctx,
		`SELECT year, rate FROM country_risk_premiums WHERE country = $1`,
		CanonicalCountry(country))
}

// IndexMovement returns the yearly price change series of a market index.
func (r *ConfigRepo) IndexMovement(ctx context.Context, name string) (models.AnnualSeries, error) {
	return yearSeries(ctx,
		`SELECT year, change FROM index_price_movements WHERE index_name = $1`, name)
}

// MarginalTaxRate returns the country marginal tax rate as a decimal. Rates
// are stored in percent; anything above 1.0 is divided by 100 on the way out.
func (r *ConfigRepo) MarginalTaxRate(ctx context.Context, country string) (float64, error) {
	pool := GetPool()
	if pool == nil {
		return 0, fmt.Errorf("database pool not initialized")
	}

	var rate float64
	err := pool.QueryRow(ctx,
		`SELECT rate FROM marginal_tax_rates WHERE country = $1`,
		CanonicalCountry(country)).Scan(&rate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("no marginal tax rate for country %s", country)
		}
		return 0, fmt.Errorf("failed to load tax rate: %w", err)
	}
	return taxRateToDecimal(rate), nil
}

func taxRateToDecimal(rate float64) float64 {
	if rate > 1.0 {
		return rate / 100
	}
	return rate
}

// UnleveredBeta averages the unlevered beta across every industry bucket the
// ticker belongs to that defines one. ok is false when the ticker has no
// bucket membership with a beta.
func (r *ConfigRepo) UnleveredBeta(ctx context.Context, ticker string) (float64, bool, error) {
	pool := GetPool()
	if pool == nil {
		return 0, false, fmt.Errorf("database pool not initialized")
	}

	var avg *float64
	err := pool.QueryRow(ctx, `
		SELECT AVG(ib.unlevered_beta)
		FROM bucket_members bm
		JOIN industry_betas ib ON ib.bucket = bm.bucket
		WHERE bm.ticker = $1
	`, ticker).Scan(&avg)
	if err != nil {
		return 0, false, fmt.Errorf("failed to load unlevered beta for %s: %w", ticker, err)
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

// AddBucketMember assigns a ticker to an industry bucket.
func (r *ConfigRepo) AddBucketMember(ctx context.Context, ticker, bucket string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	_, err := pool.Exec(ctx, `
		INSERT INTO bucket_members (ticker, bucket) VALUES ($1, $2)
		ON CONFLICT (ticker, bucket) DO NOTHING;
	`, ticker, bucket)
	if err != nil {
		return fmt.Errorf("failed to add %s to bucket %s: %w", ticker, bucket, err)
	}
	return nil
}

// Weights loads one weight set. Stored names pass through the canonical-factor
// normalization; rows with unknown names are skipped with a warning rather
// than failing the read.
func (r *ConfigRepo) Weights(ctx context.Context, kind string) (scoring.WeightSet, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT factor, weight FROM weight_factors WHERE kind = $1`, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s weights: %w", kind, err)
	}
	defer rows.Close()

	weights := scoring.WeightSet{}
	for rows.Next() {
		var name string
		var weight float64
		if err := rows.Scan(&name, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan weight row: %w", err)
		}
		factor, ok := scoring.CanonicalFactor(name)
		if !ok {
			log.Warn().Str("kind", kind).Str("factor", name).Msg("Skipping unrecognized weight factor")
			continue
		}
		weights[factor] = weight
	}
	return weights, rows.Err()
}

// SetWeight upserts one weight row. The name is canonicalized first so legacy
// spellings collapse onto one row instead of accumulating duplicates.
func (r *ConfigRepo) SetWeight(ctx context.Context, kind, name string, weight float64) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	factor, ok := scoring.CanonicalFactor(name)
	if !ok {
		return fmt.Errorf("unknown weight factor %q", name)
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO weight_factors (kind, factor, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, factor)
		DO UPDATE SET weight = EXCLUDED.weight;
	`, kind, string(factor), weight)
	if err != nil {
		return fmt.Errorf("failed to set %s weight for %s: %w", kind, factor, err)
	}
	return nil
}
