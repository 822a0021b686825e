package services

import (
	"context"
	"database/sql"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/pricing"
	"travelbackend/internal/repositories"
)

// PricingService wires the engine to the MySQL-backed catalog, rate and agent
// repositories. The engine itself stays pure; every lookup failure surfaces
// as a normal per-item error, never a panic or a batch abort.
type PricingService struct {
	CatalogRepo repositories.CatalogRepository
	RateRepo    repositories.RateRepository
	AgentRepo   repositories.AgentRepository
	DB          *sql.DB

	// Workers bounds parallel per-item evaluation in bulk requests.
	Workers int
}

func (s PricingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PricingService) catalog() repositories.CatalogRepository {
	if s.CatalogRepo.DB != nil {
		return s.CatalogRepo
	}
	return repositories.CatalogRepository{DB: s.db()}
}

func (s PricingService) rates() repositories.RateRepository {
	if s.RateRepo.DB != nil {
		return s.RateRepo
	}
	return repositories.RateRepository{DB: s.db()}
}

func (s PricingService) agents() repositories.AgentRepository {
	if s.AgentRepo.DB != nil {
		return s.AgentRepo
	}
	return repositories.AgentRepository{DB: s.db()}
}

func (s PricingService) calculator() pricing.Calculator {
	return pricing.Calculator{
		Catalog: s.catalog(),
		Rates:   s.rates(),
	}
}

// PriceItem prices a single item; the typed engine errors pass through to the
// handler layer untouched.
func (s PricingService) PriceItem(kind pricing.ItemKind, id string, pc pricing.PricingContext) (pricing.Breakdown, error) {
	return s.calculator().PriceItem(kind, id, pc)
}

// BulkCalculate prices a list of items best-effort and aggregates when every
// item succeeded. The tier override wins over the agent's stored tier.
func (s PricingService) BulkCalculate(ctx context.Context, agentID string, tierOverride pricing.Tier, items []pricing.BulkItem) (pricing.BulkResult, error) {
	agg := pricing.Aggregator{
		Calculator: s.calculator(),
		Agents:     s.agents(),
		Workers:    s.Workers,
	}
	return agg.Calculate(ctx, agentID, tierOverride, items)
}

// ResolveRate exposes standalone rate resolution for the price-probe
// endpoint.
func (s PricingService) ResolveRate(kind pricing.ItemKind, id string, pc pricing.PricingContext) (pricing.Money, error) {
	resolver := pricing.Resolver{Catalog: s.catalog(), Rates: s.rates()}
	end := pc.Date
	if !pc.EndDate.IsZero() {
		// the stay window is [start, end); rate matching is inclusive of the
		// last night only
		if last := pc.EndDate.AddDate(0, 0, -1); last.After(end) {
			end = last
		}
	}
	return resolver.Resolve(kind, id, pc.Date, end)
}
