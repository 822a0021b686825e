package services

import (
	"database/sql"
	"errors"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
	"travelbackend/internal/repositories"
	"travelbackend/internal/utils"

	"github.com/google/uuid"
)

// RateService guards the seasonal-rate table: date windows must be sane and
// two active windows for the same item may not overlap, so the engine's
// tie-break rule only ever decides between rates that were allowed to
// coexist historically.
type RateService struct {
	RateRepo    repositories.RateRepository
	CatalogRepo repositories.CatalogRepository
	DB          *sql.DB
}

func (s RateService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RateService) rates() repositories.RateRepository {
	if s.RateRepo.DB != nil {
		return s.RateRepo
	}
	return repositories.RateRepository{DB: s.db()}
}

func (s RateService) catalog() repositories.CatalogRepository {
	if s.CatalogRepo.DB != nil {
		return s.CatalogRepo
	}
	return repositories.CatalogRepository{DB: s.db()}
}

func validateRateDates(start, end string) error {
	from, err := utils.ParseDate(start)
	if err != nil {
		return domain.ValidationError{Field: "start_date", Msg: "expected YYYY-MM-DD"}
	}
	to, err := utils.ParseDate(end)
	if err != nil {
		return domain.ValidationError{Field: "end_date", Msg: "expected YYYY-MM-DD"}
	}
	if !from.Before(to) {
		return domain.ValidationError{Field: "start_date", Msg: "must be before end_date"}
	}
	return nil
}

// Create validates the window, verifies the item exists and rejects overlaps
// with other active rates for the same item.
func (s RateService) Create(payload models.SeasonalRatePayload) (models.SeasonalRate, error) {
	kind := pricing.ItemKind(payload.ItemKind)
	if !kind.Valid() {
		return models.SeasonalRate{}, domain.ValidationError{Field: "item_kind", Msg: "unknown item kind"}
	}
	if payload.Rate <= 0 {
		return models.SeasonalRate{}, domain.ValidationError{Field: "rate", Msg: "must be positive"}
	}
	if err := validateRateDates(payload.StartDate, payload.EndDate); err != nil {
		return models.SeasonalRate{}, err
	}
	if _, err := s.catalog().Item(kind, payload.ItemID); err != nil {
		if pricing.IsItemNotFound(err) {
			return models.SeasonalRate{}, domain.NotFoundError{Resource: string(kind), Err: err}
		}
		return models.SeasonalRate{}, domain.InternalError{Err: err}
	}

	overlap, err := s.rates().FindOverlapping(payload.ItemKind, payload.ItemID, payload.StartDate, payload.EndDate, "")
	if err == nil {
		return models.SeasonalRate{}, domain.ConflictError{
			Resource: "seasonal_rate",
			Msg:      "overlaps with existing rate " + overlap.SeasonName,
		}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.SeasonalRate{}, domain.InternalError{Err: err}
	}

	sr := models.SeasonalRate{
		ID:         uuid.NewString(),
		ItemKind:   payload.ItemKind,
		ItemID:     payload.ItemID,
		SeasonName: payload.SeasonName,
		SeasonType: payload.SeasonType,
		StartDate:  payload.StartDate,
		EndDate:    payload.EndDate,
		Rate:       payload.Rate,
		Currency:   payload.Currency,
		MinStay:    payload.MinStay,
		IsActive:   true,
	}
	if err := s.rates().Insert(sr); err != nil {
		return models.SeasonalRate{}, domain.InternalError{Err: err}
	}
	return sr, nil
}

func (s RateService) Get(id string) (models.SeasonalRate, error) {
	sr, err := s.rates().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SeasonalRate{}, domain.NotFoundError{Resource: "seasonal_rate", Err: err}
		}
		return models.SeasonalRate{}, domain.InternalError{Err: err}
	}
	return sr, nil
}

func (s RateService) ListByItem(kind, itemID string, includeAll bool) ([]models.SeasonalRate, error) {
	out, err := s.rates().ListByItem(kind, itemID, includeAll)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Update rewrites a rate in place; the window still has to be sane and must
// not collide with another active rate.
func (s RateService) Update(id string, payload models.SeasonalRatePayload) (models.SeasonalRate, error) {
	sr, err := s.Get(id)
	if err != nil {
		return models.SeasonalRate{}, err
	}
	if payload.SeasonName != "" {
		sr.SeasonName = payload.SeasonName
	}
	if payload.SeasonType != "" {
		sr.SeasonType = payload.SeasonType
	}
	if payload.StartDate != "" {
		sr.StartDate = payload.StartDate
	}
	if payload.EndDate != "" {
		sr.EndDate = payload.EndDate
	}
	if payload.Rate > 0 {
		sr.Rate = payload.Rate
	}
	if payload.Currency != "" {
		sr.Currency = payload.Currency
	}
	if payload.MinStay > 0 {
		sr.MinStay = payload.MinStay
	}
	if err := validateRateDates(sr.StartDate, sr.EndDate); err != nil {
		return models.SeasonalRate{}, err
	}

	overlap, err := s.rates().FindOverlapping(sr.ItemKind, sr.ItemID, sr.StartDate, sr.EndDate, sr.ID)
	if err == nil {
		return models.SeasonalRate{}, domain.ConflictError{
			Resource: "seasonal_rate",
			Msg:      "overlaps with existing rate " + overlap.SeasonName,
		}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.SeasonalRate{}, domain.InternalError{Err: err}
	}

	if err := s.rates().Update(sr); err != nil {
		return models.SeasonalRate{}, domain.InternalError{Err: err}
	}
	return sr, nil
}

// Delete soft-deletes: the rate disappears from resolution but keeps its row.
func (s RateService) Delete(id string) error {
	if err := s.rates().Deactivate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "seasonal_rate", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}
