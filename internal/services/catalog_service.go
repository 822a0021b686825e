package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "travelbackend/internal/config"
	"travelbackend/internal/domain"
	"travelbackend/internal/domain/models"
	"travelbackend/internal/pricing"
	"travelbackend/internal/repositories"

	"github.com/google/uuid"
)

// CatalogService covers package CRUD, the admin bulk import and the read-only
// hotel and add-on listings the quote builder consumes.
type CatalogService struct {
	PackageRepo repositories.PackageRepository
	CatalogRepo repositories.CatalogRepository
	DB          *sql.DB
}

func (s CatalogService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CatalogService) packages() repositories.PackageRepository {
	if s.PackageRepo.DB != nil {
		return s.PackageRepo
	}
	return repositories.PackageRepository{DB: s.db()}
}

func (s CatalogService) catalog() repositories.CatalogRepository {
	if s.CatalogRepo.DB != nil {
		return s.CatalogRepo
	}
	return repositories.CatalogRepository{DB: s.db()}
}

// Hotels lists active rooms, optionally filtered by location.
func (s CatalogService) Hotels(location string) ([]models.HotelRoom, error) {
	out, err := s.catalog().ListHotelRooms(location)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// AddOns lists active per-pax extras of the given kind.
func (s CatalogService) AddOns(kind pricing.ItemKind) ([]models.AddOn, error) {
	if !kind.PerPax() {
		return nil, domain.ValidationError{Field: "kind", Msg: "expected activity or add_on"}
	}
	out, err := s.catalog().ListAddOns(kind)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s CatalogService) List(search string, page, pageSize int) ([]models.TourPackage, domain.Pagination, error) {
	items, total, err := s.packages().List(search, page, pageSize)
	if err != nil {
		return nil, domain.Pagination{}, domain.InternalError{Err: err}
	}
	pg := domain.Pagination{Page: page, PageSize: pageSize, Total: total}
	pg.Pages = pg.PageCount()
	return items, pg, nil
}

func (s CatalogService) Get(id string) (models.TourPackage, error) {
	p, err := s.packages().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TourPackage{}, domain.NotFoundError{Resource: "package", Err: err}
		}
		return models.TourPackage{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func packageFromPayload(payload models.PackagePayload) (models.TourPackage, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return models.TourPackage{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if payload.Duration == 0 {
		return models.TourPackage{}, domain.ValidationError{Field: "duration", Msg: "must be at least one day"}
	}
	if payload.BasePrice <= 0 {
		return models.TourPackage{}, domain.ValidationError{Field: "base_price", Msg: "must be positive"}
	}
	transport := true
	if payload.Transport != nil {
		transport = *payload.Transport
	}
	return models.TourPackage{
		Name:        name,
		Duration:    payload.Duration,
		Locations:   payload.Locations,
		BasePrice:   payload.BasePrice,
		Currency:    payload.Currency,
		Description: payload.Description,
		Category:    payload.Category,
		Transport:   transport,
		IsActive:    true,
	}, nil
}

func (s CatalogService) Create(payload models.PackagePayload) (models.TourPackage, error) {
	p, err := packageFromPayload(payload)
	if err != nil {
		return models.TourPackage{}, err
	}
	p.ID = uuid.NewString()
	if err := s.packages().Insert(p); err != nil {
		return models.TourPackage{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func (s CatalogService) Update(id string, payload models.PackagePayload) (models.TourPackage, error) {
	if _, err := s.Get(id); err != nil {
		return models.TourPackage{}, err
	}
	p, err := packageFromPayload(payload)
	if err != nil {
		return models.TourPackage{}, err
	}
	p.ID = id
	if err := s.packages().Update(p); err != nil {
		return models.TourPackage{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func (s CatalogService) Delete(id string) error {
	if err := s.packages().Deactivate(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "package", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

// BulkImportResult summarizes a best-effort import: rows fail independently
// and the batch never aborts on one bad row.
type BulkImportResult struct {
	Created int      `json:"created_count"`
	Skipped int      `json:"skipped_count"`
	Errors  []string `json:"errors"`
}

// BulkImport inserts packages row by row, skipping names that already exist.
func (s CatalogService) BulkImport(payloads []models.PackagePayload) (BulkImportResult, error) {
	res := BulkImportResult{Errors: []string{}}
	repo := s.packages()
	for _, payload := range payloads {
		p, err := packageFromPayload(payload)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("package %q: %v", payload.Name, err))
			continue
		}
		if _, err := repo.GetByName(p.Name); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			res.Errors = append(res.Errors, fmt.Sprintf("package %q: %v", p.Name, err))
			continue
		}
		p.ID = uuid.NewString()
		if err := repo.Insert(p); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("package %q: %v", p.Name, err))
			continue
		}
		res.Created++
	}
	return res, nil
}
