package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"travelbackend/internal/domain/models"
	"travelbackend/internal/http/middleware"
	"travelbackend/internal/services"
	"travelbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

// PackageHandler covers tour package CRUD and the admin bulk import.
type PackageHandler struct {
	Catalog services.CatalogService
}

// GET /api/packages?q=&page=&page_size=
func (h PackageHandler) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("q"))
	page, pageSize := PageParams(c)

	items, pg, err := h.Catalog.List(search, page, pageSize)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": items, "pagination": pg})
}

// GET /api/packages/:id
func (h PackageHandler) Get(c *gin.Context) {
	p, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /api/packages
func (h PackageHandler) Create(c *gin.Context) {
	var payload models.PackagePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	p, err := h.Catalog.Create(payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "packages", "create", "package "+p.ID+" created")
	c.JSON(http.StatusCreated, p)
}

// PUT /api/packages/:id
func (h PackageHandler) Update(c *gin.Context) {
	var payload models.PackagePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	p, err := h.Catalog.Update(c.Param("id"), payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/packages/:id
func (h PackageHandler) Delete(c *gin.Context) {
	if err := h.Catalog.Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "package deactivated"})
}

// POST /api/packages/bulk-import
//
// Best-effort row-by-row import; one bad row never aborts the batch.
func (h PackageHandler) BulkImport(c *gin.Context) {
	var payloads []models.PackagePayload
	if !BindJSONOrError(c, &payloads) {
		return
	}
	res, err := h.Catalog.BulkImport(payloads)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "packages", "bulk_import",
		fmt.Sprintf("created=%d skipped=%d errors=%d", res.Created, res.Skipped, len(res.Errors)))
	c.JSON(http.StatusOK, res)
}
