package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
	"travelbackend/internal/quotes"
	"travelbackend/internal/repositories"
	"travelbackend/internal/utils"

	"github.com/google/uuid"
)

// QuoteService owns quote creation, recalculation and lifecycle transitions.
// Pricing snapshots are captured into the quote at calculation time; a later
// tier or rate change never rewrites an issued quote.
type QuoteService struct {
	QuoteRepo repositories.QuoteRepository
	AgentRepo repositories.AgentRepository
	Pricing   PricingService
	DB        *sql.DB

	// ValidDays is the quote validity window; 30 when unset.
	ValidDays int
	// Now is injectable for lifecycle tests.
	Now func() time.Time
}

func (s QuoteService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s QuoteService) quotesRepo() repositories.QuoteRepository {
	if s.QuoteRepo.DB != nil {
		return s.QuoteRepo
	}
	return repositories.QuoteRepository{DB: s.db()}
}

func (s QuoteService) agentsRepo() repositories.AgentRepository {
	if s.AgentRepo.DB != nil {
		return s.AgentRepo
	}
	return repositories.AgentRepository{DB: s.db()}
}

func (s QuoteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s QuoteService) validDays() int {
	if s.ValidDays > 0 {
		return s.ValidDays
	}
	return 30
}

// Create prices every requested item and persists a draft quote. Creation is
// all-or-nothing: a quote is never stored with a partially priced item list.
func (s QuoteService) Create(ctx context.Context, rc domain.RequestContext, payload models.QuotePayload) (models.Quote, error) {
	agent, err := s.agentsRepo().GetByID(rc.AgentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quote{}, domain.NotFoundError{Resource: "agent", Err: err}
		}
		return models.Quote{}, domain.InternalError{Err: err}
	}
	if agent.Status != "" && agent.Status != "approved" && agent.Status != "active" {
		return models.Quote{}, domain.ForbiddenError{Msg: "agent not approved"}
	}

	result, err := s.priceItems(ctx, payload, agent)
	if err != nil {
		return models.Quote{}, err
	}

	now := s.now()
	q := models.Quote{
		ID:          uuid.NewString(),
		AgentID:     agent.ID,
		ClientName:  utils.NormalizeSpace(payload.ClientName),
		ClientEmail: strings.TrimSpace(payload.ClientEmail),
		ClientPhone: strings.TrimSpace(payload.ClientPhone),
		TravelStart: payload.TravelStart,
		TravelEnd:   payload.TravelEnd,
		Party:       payload.Party,
		Items:       payload.Items,
		Status:      models.QuoteDraft,
		ValidUntil:  now.AddDate(0, 0, s.validDays()),
		Notes:       payload.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyPricing(&q, result)

	repo := s.quotesRepo()
	if err := repo.EnsureTable(); err != nil {
		return models.Quote{}, domain.InternalError{Err: err}
	}
	if err := repo.Insert(q); err != nil {
		return models.Quote{}, domain.InternalError{Err: err}
	}
	return q, nil
}

// priceItems validates the payload, builds one pricing context per item and
// runs the bulk aggregator. Any per-item failure rejects the whole payload
// because quotes must be internally consistent.
func (s QuoteService) priceItems(ctx context.Context, payload models.QuotePayload, agent models.Agent) (pricing.BulkResult, error) {
	if len(payload.Items) == 0 {
		return pricing.BulkResult{}, domain.ValidationError{Field: "items", Msg: "at least one item is required"}
	}
	if payload.Party.Total() == 0 {
		return pricing.BulkResult{}, domain.ValidationError{Field: "party", Msg: "at least one traveler is required"}
	}
	start, err := utils.ParseDate(payload.TravelStart)
	if err != nil {
		return pricing.BulkResult{}, domain.ValidationError{Field: "travel_start", Msg: "expected YYYY-MM-DD"}
	}
	var end time.Time
	if strings.TrimSpace(payload.TravelEnd) != "" {
		end, err = utils.ParseDate(payload.TravelEnd)
		if err != nil {
			return pricing.BulkResult{}, domain.ValidationError{Field: "travel_end", Msg: "expected YYYY-MM-DD"}
		}
		if !end.After(start) {
			return pricing.BulkResult{}, domain.ValidationError{Field: "travel_end", Msg: "must be after travel_start"}
		}
	}

	items := make([]pricing.BulkItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		if !it.Kind.Valid() {
			return pricing.BulkResult{}, domain.ValidationError{Field: "items", Msg: fmt.Sprintf("unknown item kind %q", it.Kind)}
		}
		pc := pricing.PricingContext{
			Date:         start,
			EndDate:      end,
			Party:        payload.Party,
			Nights:       it.Nights,
			DiscountMode: it.DiscountMode,
			MarkupType:   it.MarkupType,
			MarkupValue:  it.MarkupValue,
		}
		// Per-item tier discounting is opt-in per line; the aggregate
		// discount below always applies. Running both on one line is a
		// deliberate, observable layering, not a bug.
		if it.DiscountMode != "" {
			pc.AgentTier = pricing.Tier(agent.Tier)
		}
		items = append(items, pricing.BulkItem{Kind: it.Kind, ID: it.ItemID, Context: pc})
	}

	result, err := s.Pricing.BulkCalculate(ctx, agent.ID, pricing.Tier(agent.Tier), items)
	if err != nil {
		return pricing.BulkResult{}, domain.InternalError{Err: err}
	}
	if !result.AllSucceeded() {
		for _, item := range result.Items {
			if item.Err != nil {
				return pricing.BulkResult{}, domain.ValidationError{
					Field: "items",
					Msg:   fmt.Sprintf("%s %q: %v", item.Kind, item.ID, item.Err),
					Err:   item.Err,
				}
			}
		}
	}
	return result, nil
}

func applyPricing(q *models.Quote, result pricing.BulkResult) {
	breakdowns := make([]pricing.Breakdown, 0, len(result.Items))
	for _, item := range result.Items {
		breakdowns = append(breakdowns, *item.Breakdown)
	}
	q.Pricing = breakdowns
	q.Subtotal = result.Subtotal
	q.AgentDiscount = result.AgentDiscount
	if result.Total != nil {
		q.Total = *result.Total
	}
	q.AgentTier = string(result.AgentTier)
	q.DiscountPercent = result.DiscountPercent
}

// Get fetches a quote with ownership enforcement and lazy expiry: reading a
// stale quote is what flips it to expired, there is no background sweep.
func (s QuoteService) Get(rc domain.RequestContext, id string) (models.Quote, error) {
	q, err := s.fetch(id)
	if err != nil {
		return models.Quote{}, err
	}
	if q.AgentID != rc.AgentID && !rc.IsAdmin() {
		return models.Quote{}, domain.ForbiddenError{}
	}
	return s.lazyExpire(q), nil
}

func (s QuoteService) fetch(id string) (models.Quote, error) {
	q, err := s.quotesRepo().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quote{}, domain.NotFoundError{Resource: "quote", Err: err}
		}
		return models.Quote{}, domain.InternalError{Err: err}
	}
	return q, nil
}

func (s QuoteService) lazyExpire(q models.Quote) models.Quote {
	eff := quotes.EffectiveStatus(q, s.now())
	if eff != q.Status {
		q.Status = eff
		// best-effort persistence; the derived status is authoritative either way
		_ = s.quotesRepo().UpdateStatus(q.ID, eff)
	}
	return q
}

// List returns the agent's own quotes.
func (s QuoteService) List(rc domain.RequestContext, status models.QuoteStatus, search string, page, pageSize int) ([]models.Quote, domain.Pagination, error) {
	items, total, err := s.quotesRepo().ListByAgent(rc.AgentID, status, search, page, pageSize)
	if err != nil {
		return nil, domain.Pagination{}, domain.InternalError{Err: err}
	}
	now := s.now()
	for i := range items {
		items[i].Status = quotes.EffectiveStatus(items[i], now)
	}
	pg := domain.Pagination{Page: page, PageSize: pageSize, Total: total}
	pg.Pages = pg.PageCount()
	return items, pg, nil
}

// Update rewrites a draft's client fields and, when trip parameters changed,
// re-prices the snapshot. Anything past draft is frozen.
func (s QuoteService) Update(ctx context.Context, rc domain.RequestContext, id string, payload models.QuotePayload) (models.Quote, error) {
	q, err := s.fetch(id)
	if err != nil {
		return models.Quote{}, err
	}
	if q.AgentID != rc.AgentID {
		return models.Quote{}, domain.ForbiddenError{}
	}
	if !quotes.CanRecalculate(q, s.now()) {
		return models.Quote{}, domain.ConflictError{Resource: "quote", Msg: "only draft quotes can be updated"}
	}

	agent, err := s.agentsRepo().GetByID(rc.AgentID)
	if err != nil {
		return models.Quote{}, domain.InternalError{Err: err}
	}

	result, err := s.priceItems(ctx, payload, agent)
	if err != nil {
		return models.Quote{}, err
	}

	q.ClientName = utils.NormalizeSpace(payload.ClientName)
	q.ClientEmail = strings.TrimSpace(payload.ClientEmail)
	q.ClientPhone = strings.TrimSpace(payload.ClientPhone)
	q.TravelStart = payload.TravelStart
	q.TravelEnd = payload.TravelEnd
	q.Party = payload.Party
	q.Items = payload.Items
	q.Notes = payload.Notes
	q.UpdatedAt = s.now()
	applyPricing(&q, result)

	if err := s.quotesRepo().Update(q); err != nil {
		return models.Quote{}, domain.InternalError{Err: err}
	}
	return q, nil
}

// Transition applies a lifecycle move. Send and confirm require ownership;
// the viewed acknowledgment arrives from the client side and only needs the
// quote id.
func (s QuoteService) Transition(rc domain.RequestContext, id string, to models.QuoteStatus) (models.Quote, error) {
	q, err := s.fetch(id)
	if err != nil {
		return models.Quote{}, err
	}
	if to != models.QuoteViewed && q.AgentID != rc.AgentID && !rc.IsAdmin() {
		return models.Quote{}, domain.ForbiddenError{}
	}

	before := q.Status
	if err := quotes.Apply(&q, to, s.now()); err != nil {
		return models.Quote{}, err
	}
	if q.Status != before {
		if err := s.quotesRepo().UpdateStatus(q.ID, q.Status); err != nil {
			return models.Quote{}, domain.InternalError{Err: err}
		}
	}
	return q, nil
}

// Duplicate copies a quote into a fresh draft with a new validity window.
// The priced snapshot is copied as-is; the agent recalculates from draft if
// rates moved.
func (s QuoteService) Duplicate(rc domain.RequestContext, id string) (models.Quote, error) {
	q, err := s.fetch(id)
	if err != nil {
		return models.Quote{}, err
	}
	if q.AgentID != rc.AgentID {
		return models.Quote{}, domain.ForbiddenError{}
	}

	now := s.now()
	dup := q
	dup.ID = uuid.NewString()
	dup.ClientName = "Copy of " + q.ClientName
	dup.Status = models.QuoteDraft
	dup.ValidUntil = now.AddDate(0, 0, s.validDays())
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.quotesRepo().Insert(dup); err != nil {
		return models.Quote{}, domain.InternalError{Err: err}
	}
	return dup, nil
}

// Delete removes a draft. Sent and later quotes are part of the client
// conversation and stay.
func (s QuoteService) Delete(rc domain.RequestContext, id string) error {
	q, err := s.fetch(id)
	if err != nil {
		return err
	}
	if q.AgentID != rc.AgentID {
		return domain.ForbiddenError{}
	}
	if quotes.EffectiveStatus(q, s.now()) != models.QuoteDraft {
		return domain.ConflictError{Resource: "quote", Msg: "only draft quotes can be deleted"}
	}
	if err := s.quotesRepo().Delete(id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
