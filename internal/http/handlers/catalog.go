package handlers

import (
	"net/http"
	"strings"

	"travelbackend/internal/pricing"
	"travelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the read-only hotel and add-on listings.
type CatalogHandler struct {
	Catalog services.CatalogService
}

// GET /api/hotels?location=
func (h CatalogHandler) Hotels(c *gin.Context) {
	rooms, err := h.Catalog.Hotels(strings.TrimSpace(c.Query("location")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel_rooms": rooms})
}

// GET /api/add-ons?kind=add_on (or activity)
func (h CatalogHandler) AddOns(c *gin.Context) {
	kind := pricing.ItemKind(strings.TrimSpace(c.Query("kind")))
	if kind == "" {
		kind = pricing.ItemAddOn
	}
	out, err := h.Catalog.AddOns(kind)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"add_ons": out})
}
