package handlers

import (
	"net/http"
	"strings"

	"travelbackend/internal/domain/models"
	"travelbackend/internal/http/middleware"
	"travelbackend/internal/pricing"
	"travelbackend/internal/services"
	"travelbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

// RateHandler covers seasonal-rate CRUD plus the date probe that answers
// "what would this package cost on that date".
type RateHandler struct {
	Rates   services.RateService
	Pricing services.PricingService
}

// GET /api/seasonal-rates?item_kind=&item_id=&all=true
func (h RateHandler) List(c *gin.Context) {
	kind := strings.TrimSpace(c.Query("item_kind"))
	itemID := strings.TrimSpace(c.Query("item_id"))
	if kind == "" || itemID == "" {
		RespondError(c, http.StatusBadRequest, "item_kind and item_id are required", nil)
		return
	}
	includeAll := c.Query("all") == "true"

	out, err := h.Rates.ListByItem(kind, itemID, includeAll)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": out})
}

// GET /api/seasonal-rates/:id
func (h RateHandler) Get(c *gin.Context) {
	sr, err := h.Rates.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

// POST /api/seasonal-rates
func (h RateHandler) Create(c *gin.Context) {
	var payload models.SeasonalRatePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	sr, err := h.Rates.Create(payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "rates", "create",
		"rate "+sr.ID+" for "+sr.ItemKind+" "+sr.ItemID)
	c.JSON(http.StatusCreated, sr)
}

// PUT /api/seasonal-rates/:id
func (h RateHandler) Update(c *gin.Context) {
	var payload models.SeasonalRatePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	sr, err := h.Rates.Update(c.Param("id"), payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

// DELETE /api/seasonal-rates/:id
func (h RateHandler) Delete(c *gin.Context) {
	if err := h.Rates.Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "seasonal rate deactivated"})
}

// GET /api/seasonal-rates/package/:id/price?date=YYYY-MM-DD&end_date=
//
// Resolves the effective per-unit rate for the date (or stay window) without
// running the full calculation.
func (h RateHandler) PackagePrice(c *gin.Context) {
	dateStr := strings.TrimSpace(c.Query("date"))
	if dateStr == "" {
		RespondError(c, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
		return
	}

	pc := pricing.PricingContext{Date: date}
	if endStr := strings.TrimSpace(c.Query("end_date")); endStr != "" {
		end, err := utils.ParseDate(endStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD", err)
			return
		}
		pc.EndDate = end
	}

	price, err := h.Pricing.ResolveRate(pricing.ItemPackage, c.Param("id"), pc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"item_kind": pricing.ItemPackage,
		"item_id":   c.Param("id"),
		"date":      dateStr,
		"price":     price,
	})
}
