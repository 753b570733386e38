package store

import (
	"context"
	"fmt"

	"fundamental_metrics/pkg/core/scoring"
)

// Seed rows for the configuration tables. Applied only when the target table
// is empty so operator edits survive restarts.

var growthWeightDefaults = []struct {
	factor scoring.Factor
	weight float64
}{
	{scoring.FactorAccumulatedProfitGrowth, 12.0},
	{scoring.FactorPretaxIncomeGrowth, 12.0},
	{scoring.FactorROCE, 15.0},
	{scoring.FactorNetIncomeGrowth, 20.0},
	{scoring.FactorROE, 20.0},
	{scoring.FactorRevenueGrowth, 15.0},
	{scoring.FactorOperatingMargin, 20.0},
	{scoring.FactorOperatingMarginGrowth, 20.0},
	{scoring.FactorNOPATGrowth, 15.0},
	{scoring.FactorFreeCashFlowGrowth, 15.0},
	{scoring.FactorEarningsPowerChange, 20.0},
	{scoring.FactorEPDeltaChange, 20.0},
	{scoring.FactorSpread, 20.0},
}

var stddevWeightDefaults = []struct {
	factor scoring.Factor
	weight float64
}{
	{scoring.FactorRevenueGrowth, 20.0},
	{scoring.FactorNetIncomeGrowth, 20.0},
	{scoring.FactorOperatingMargin, 20.0},
	{scoring.FactorROE, 20.0},
	{scoring.FactorROCE, 20.0},
	{scoring.FactorPretaxIncomeGrowth, 15.0},
	{scoring.FactorAccumulatedProfitGrowth, 15.0},
	{scoring.FactorNOPATGrowth, 15.0},
	{scoring.FactorOperatingMarginGrowth, 12.0},
	{scoring.FactorEarningsPowerChange, 10.0},
	{scoring.FactorEPDeltaChange, 10.0},
	{scoring.FactorSpread, 10.0},
	{scoring.FactorFreeCashFlowGrowth, 10.0},
}

// year, usa, india, china, japan; percentage points.
var riskFreeDefaults = [][5]float64{
	{2015, 2.14, 7.70, 3.40, 0.36},
	{2016, 1.84, 6.95, 2.90, -0.06},
	{2017, 2.33, 6.70, 3.60, 0.05},
	{2018, 2.91, 7.70, 3.60, 0.07},
	{2019, 2.14, 6.70, 3.20, -0.10},
	{2020, 0.89, 5.95, 2.90, 0.01},
	{2021, 1.45, 6.20, 2.95, 0.07},
	{2022, 2.95, 7.29, 2.75, 0.23},
	{2023, 3.96, 7.18, 2.70, 0.56},
	{2024, 4.25, 6.95, 2.30, 0.92},
	{2025, 4.00, 6.49, 1.83, 1.80},
}

var impliedERPDefaults = []struct {
	year int
	rate float64
	note string
}{
	{2010, 4.36, "Recovery from 2008 Financial Crisis."},
	{2011, 5.20, "Recovery from 2010 flash crash/jitters."},
	{2012, 6.01, "Eurozone debt crisis fears."},
	{2013, 5.78, "Fiscal cliff concerns early in the year."},
	{2014, 4.96, "Low volatility environment."},
	{2015, 5.78, "Steady recovery pricing."},
	{2016, 6.12, "Concerns over China growth and oil price crash."},
	{2017, 5.69, "Post-election uncertainty and growth hopes."},
	{2018, 5.08, "Tax cuts enacted; steady growth expectations."},
	{2019, 5.96, "Higher risk pricing following late 2018 market drop."},
	{2020, 5.20, "Pre-pandemic level (spiked to >6.0% in March 2020)."},
	{2021, 4.72, "Post-COVID recovery optimism."},
	{2022, 4.24, "Low ERP at start of year before inflation/rates spiked."},
	{2023, 5.94, "Spike due to high inflation and aggressive Fed hikes."},
	{2024, 4.60, "Decreased from 2023 as inflation fears eased."},
	{2025, 4.33, "Market priced for \"soft landing\" despite high rates."},
}

// year, india, china, japan, usa, uk, uae; percentage points.
var crpDefaults = [][7]float64{
	{2015, 3.46, 0.95, 1.11, 0.00, 0.63, 0.78},
	{2016, 3.13, 0.86, 1.00, 0.00, 0.56, 0.71},
	{2017, 2.19, 0.81, 0.81, 0.00, 0.57, 0.57},
	{2018, 2.64, 0.98, 0.98, 0.00, 0.69, 0.69},
	{2019, 1.88, 0.69, 0.69, 0.00, 0.49, 0.49},
	{2020, 2.13, 0.68, 0.68, 0.00, 0.59, 0.48},
	{2021, 2.18, 0.70, 0.70, 0.00, 0.60, 0.49},
	{2022, 3.79, 1.22, 1.22, 0.00, 1.03, 0.85},
	{2023, 3.21, 1.03, 1.03, 0.00, 0.88, 0.72},
	{2024, 2.93, 0.94, 0.94, 0.00, 0.80, 0.66},
	{2025, 2.85, 0.91, 0.91, 0.23, 0.78, 0.64},
}

var marginalTaxDefaults = []struct {
	country string
	rate    float64
	note    string
}{
	{CountryUSA, 25.70, "Federal (21%) plus composite state tax; standard OECD analyst rate for a diversified US company."},
	{CountryIndia, 25.17, "Base (22%) + surcharge (10%) + cess (4%) under the Section 115BAA regime."},
	{CountryChina, 25.00, "Standard national rate; 15% applies only to qualified High-Tech Enterprises."},
	{CountryJapan, 30.62, "National + local inhabitant + enterprise tax; widely cited effective statutory rate."},
}

// year, nasdaq, sp500; percent.
var indexMovementDefaults = [][3]float64{
	{2015, 5.70, -0.70},
	{2016, 7.50, 9.50},
	{2017, 28.20, 19.40},
	{2018, -3.90, -6.20},
	{2019, 35.20, 28.90},
	{2020, 43.60, 16.30},
	{2021, 21.40, 26.90},
	{2022, -33.10, -19.40},
	{2023, 43.40, 24.20},
	{2024, 28.60, 23.30},
	{2025, 19.20, 15.00},
}

var industryBetaDefaults = []struct {
	bucket        string
	industry      string
	unlevered     float64
	cashAdjusted  float64
}{
	{"Technology : Internet Content & Info", "Software (Internet)", 1.63, 1.69},
	{"Technology : Semiconductors", "Semiconductor", 1.36, 1.45},
	{"Technology : Semi. Equip & Materials", "Semiconductor Equip", 1.35, 1.44},
	{"Technology : Software - Infrastructure", "Software (System & Application)", 1.20, 1.22},
	{"Technology : Software - Application", "Software (System & Application)", 1.20, 1.22},
	{"Technology : Scientific Instruments", "Electrical Equipment", 1.20, 1.23},
	{"Technology : Computer Hardware", "Computers/Peripherals", 1.10, 1.12},
	{"Technology : IT Services", "Computer Services", 1.03, 1.09},
	{"Technology : Electronic Components", "Electronics (General)", 1.01, 1.03},
	{"Technology : Comm. Equipment", "Telecom. Equipment", 0.91, 0.95},
	{"Technology : Electronics & Distribution", "Retail (Distributors)", 0.91, 0.93},
	{"Technology : Consumer Electronics", "Electronics (Consumer & Office)", 0.84, 0.95},
	{"Technology : Solar", "Green & Renewable Energy", 0.49, 0.50},
	{"Technology : Telecom (Wireless)", "Telecom (Wireless)", 0.57, 0.59},
}

// SeedDefaults populates each empty configuration table with its defaults.
func SeedDefaults(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	empty := func(table string) (bool, error) {
		var count int
		if err := pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return false, fmt.Errorf("failed to count %s: %w", table, err)
		}
		return count == 0, nil
	}

	if ok, err := empty("weight_factors"); err != nil {
		return err
	} else if ok {
		for _, w := range growthWeightDefaults {
			if _, err := pool.Exec(ctx,
				`INSERT INTO weight_factors (kind, factor, weight) VALUES ($1, $2, $3)`,
				WeightKindGrowth, string(w.factor), w.weight); err != nil {
				return fmt.Errorf("failed to seed growth weights: %w", err)
			}
		}
		for _, w := range stddevWeightDefaults {
			if _, err := pool.Exec(ctx,
				`INSERT INTO weight_factors (kind, factor, weight) VALUES ($1, $2, $3)`,
				WeightKindStddev, string(w.factor), w.weight); err != nil {
				return fmt.Errorf("failed to seed stddev weights: %w", err)
			}
		}
	}

	if ok, err := empty("risk_free_rates"); err != nil {
		return err
	} else if ok {
		countries := []string{CountryUSA, CountryIndia, CountryChina, CountryJapan}
		for _, row := range riskFreeDefaults {
			for i, country := range countries {
				if _, err := pool.Exec(ctx,
					`INSERT INTO risk_free_rates (country, year, rate) VALUES ($1, $2, $3)`,
					country, int(row[0]), row[i+1]); err != nil {
					return fmt.Errorf("failed to seed risk-free rates: %w", err)
				}
			}
		}
	}

	if ok, err := empty("implied_erp"); err != nil {
		return err
	} else if ok {
		for _, row := range impliedERPDefaults {
			if _, err := pool.Exec(ctx,
				`INSERT INTO implied_erp (year, rate, note) VALUES ($1, $2, $3)`,
				row.year, row.rate, row.note); err != nil {
				return fmt.Errorf("failed to seed implied ERP: %w", err)
			}
		}
	}

	if ok, err := empty("country_risk_premiums"); err != nil {
		return err
	} else if ok {
		countries := []string{CountryIndia, CountryChina, CountryJapan, CountryUSA, CountryUK, CountryUAE}
		for _, row := range crpDefaults {
			for i, country := range countries {
				if _, err := pool.Exec(ctx,
					`INSERT INTO country_risk_premiums (country, year, rate) VALUES ($1, $2, $3)`,
					country, int(row[0]), row[i+1]); err != nil {
					return fmt.Errorf("failed to seed country risk premiums: %w", err)
				}
			}
		}
	}

	if ok, err := empty("marginal_tax_rates"); err != nil {
		return err
	} else if ok {
		for _, row := range marginalTaxDefaults {
			if _, err := pool.Exec(ctx,
				`INSERT INTO marginal_tax_rates (country, rate, note) VALUES ($1, $2, $3)`,
				row.country, row.rate, row.note); err != nil {
				return fmt.Errorf("failed to seed marginal tax rates: %w", err)
			}
		}
	}

	if ok, err := empty("index_price_movements"); err != nil {
		return err
	} else if ok {
		for _, row := range indexMovementDefaults {
			for i, name := range []string{"NASDAQ Composite", "S&P 500"} {
				if _, err := pool.Exec(ctx,
					`INSERT INTO index_price_movements (index_name, year, change) VALUES ($1, $2, $3)`,
					name, int(row[0]), row[i+1]); err != nil {
					return fmt.Errorf("failed to seed index movements: %w", err)
				}
			}
		}
	}

	if ok, err := empty("industry_betas"); err != nil {
		return err
	} else if ok {
		for _, row := range industryBetaDefaults {
			if _, err := pool.Exec(ctx,
				`INSERT INTO industry_betas (bucket, industry, unlevered_beta, cash_adjusted_beta) VALUES ($1, $2, $3, $4)`,
				row.bucket, row.industry, row.unlevered, row.cashAdjusted); err != nil {
				return fmt.Errorf("failed to seed industry betas: %w", err)
			}
		}
	}

	return nil
}
