package store

import (
	"context"
	"fmt"
	"sync"

	"fundamental_metrics/pkg/core/scoring"
	"fundamental_metrics/pkg/models"
)

// MemoryStore is an in-memory stand-in for the Postgres repositories. It
// satisfies the same fact and configuration interfaces the orchestrator and
// handlers consume, and exists for tests and local experiments.
type MemoryStore struct {
	mu        sync.RWMutex
	facts     map[string]map[string]models.AnnualSeries // ticker -> metric -> series
	companies map[string]models.Company
	betas     map[string][]float64 // ticker -> betas of its buckets
	riskFree  map[string]models.AnnualSeries
	erp       models.AnnualSeries
	crp       map[string]models.AnnualSeries
	taxRates  map[string]float64 // decimals
	weights   map[string]scoring.WeightSet
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		facts:     map[string]map[string]models.AnnualSeries{},
		companies: map[string]models.Company{},
		betas:     map[string][]float64{},
		riskFree:  map[string]models.AnnualSeries{},
		erp:       models.AnnualSeries{},
		crp:       map[string]models.AnnualSeries{},
		taxRates:  map[string]float64{},
		weights:   map[string]scoring.WeightSet{},
	}
}

// GetSeries returns a copy of the stored series; unknown pairs are empty.
func (m *MemoryStore) GetSeries(_ context.Context, ticker, metric string) (models.AnnualSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if byMetric, ok := m.facts[ticker]; ok {
		if s, ok := byMetric[metric]; ok {
			return s.Clone(), nil
		}
	}
	return models.AnnualSeries{}, nil
}

// PutSeries upserts per year; years absent from the incoming series survive.
func (m *MemoryStore) PutSeries(_ context.Context, ticker, metric string, series models.AnnualSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.facts[ticker] == nil {
		m.facts[ticker] = map[string]models.AnnualSeries{}
	}
	if m.facts[ticker][metric] == nil {
		m.facts[ticker][metric] = models.AnnualSeries{}
	}
	for year, value := range series {
		m.facts[ticker][metric][year] = value
	}
	return nil
}

// ListTickers returns registered companies.
func (m *MemoryStore) ListTickers(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tickers := make([]string, 0, len(m.companies))
	for t := range m.companies {
		tickers = append(tickers, t)
	}
	return tickers, nil
}

// ListYears returns every fiscal year with any fact for the ticker.
func (m *MemoryStore) ListYears(_ context.Context, ticker string) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[int]struct{}{}
	for _, series := range m.facts[ticker] {
		for y := range series {
			seen[y] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	return years, nil
}

// GetCompany looks up a registered company.
func (m *MemoryStore) GetCompany(_ context.Context, ticker string) (models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.companies[ticker]
	if !ok {
		return models.Company{}, fmt.Errorf("unknown company %s", ticker)
	}
	return c, nil
}

// UpsertCompany registers a company.
func (m *MemoryStore) UpsertCompany(_ context.Context, c models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[c.Ticker] = c
	return nil
}

// SeriesBundle mirrors the Postgres repo's multi-metric fetch.
func (m *MemoryStore) SeriesBundle(ctx context.Context, ticker string, metrics []string) (map[string]models.AnnualSeries, error) {
	bundle := make(map[string]models.AnnualSeries, len(metrics))
	for _, metric := range metrics {
		s, err := m.GetSeries(ctx, ticker, metric)
		if err != nil {
			return nil, err
		}
		if len(s) > 0 {
			bundle[metric] = s
		}
	}
	return bundle, nil
}

// --- configuration side ---

// AddBucketBeta attaches one bucket beta to the ticker.
func (m *MemoryStore) AddBucketBeta(ticker string, unleveredBeta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.betas[ticker] = append(m.betas[ticker], unleveredBeta)
}

// SetRiskFree installs a country's risk-free series.
func (m *MemoryStore) SetRiskFree(country string, s models.AnnualSeries) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.riskFree[CanonicalCountry(country)] = s.Clone()
}

// SetImpliedERP installs the implied ERP series.
func (m *MemoryStore) SetImpliedERP(s models.AnnualSeries) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.erp = s.Clone()
}

// SetCRP installs a country risk premium series.
func (m *MemoryStore) SetCRP(country string, s models.AnnualSeries) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.crp[CanonicalCountry(country)] = s.Clone()
}

// SetTaxRate installs a country marginal tax rate; percent inputs are
// normalized to decimals like the Postgres repo does.
func (m *MemoryStore) SetTaxRate(country string, rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taxRates[CanonicalCountry(country)] = taxRateToDecimal(rate)
}

// UnleveredBeta averages the ticker's bucket betas.
func (m *MemoryStore) UnleveredBeta(_ context.Context, ticker string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	betas := m.betas[ticker]
	if len(betas) == 0 {
		return 0, false, nil
	}
	sum := 0.0
	for _, b := range betas {
		sum += b
	}
	return sum / float64(len(betas)), true, nil
}

// RiskFreeRates returns the country's risk-free series (USA fallback).
func (m *MemoryStore) RiskFreeRates(_ context.Context, country string) (models.AnnualSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.riskFree[riskFreeCountry(CanonicalCountry(country))]; ok {
		return s.Clone(), nil
	}
	return models.AnnualSeries{}, nil
}

// ImpliedERP returns the implied ERP series.
func (m *MemoryStore) ImpliedERP(_ context.Context) (models.AnnualSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.erp.Clone(), nil
}

// CountryRiskPremium returns the country's CRP series; empty when unseeded.
func (m *MemoryStore) CountryRiskPremium(_ context.Context, country string) (models.AnnualSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.crp[CanonicalCountry(country)]; ok {
		return s.Clone(), nil
	}
	return models.AnnualSeries{}, nil
}

// MarginalTaxRate returns the country's tax rate as a decimal.
func (m *MemoryStore) MarginalTaxRate(_ context.Context, country string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rate, ok := m.taxRates[CanonicalCountry(country)]
	if !ok {
		return 0, fmt.Errorf("no marginal tax rate for country %s", country)
	}
	return rate, nil
}

// Weights returns one weight set, keyed like the Postgres repo.
func (m *MemoryStore) Weights(_ context.Context, kind string) (scoring.WeightSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := scoring.WeightSet{}
	for f, w := range m.weights[kind] {
		out[f] = w
	}
	return out, nil
}

// SetWeight upserts one weight row after canonicalizing the name.
func (m *MemoryStore) SetWeight(_ context.Context, kind, name string, weight float64) error {
	factor, ok := scoring.CanonicalFactor(name)
	if !ok {
		return fmt.Errorf("unknown weight factor %q", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.weights[kind] == nil {
		m.weights[kind] = scoring.WeightSet{}
	}
	m.weights[kind][factor] = weight
	return nil
}
