package handlers

import (
	"net/http"
	"strings"
	"time"

	"travelbackend/internal/domain/models"
	"travelbackend/internal/http/middleware"
	"travelbackend/internal/pricing"
	"travelbackend/internal/services"
	"travelbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

// QuoteHandler exposes quote CRUD, lifecycle transitions and the stateless
// calculate endpoints.
type QuoteHandler struct {
	Quotes  services.QuoteService
	Pricing services.PricingService
	Agents  services.AgentService
}

// POST /api/quotes
func (h QuoteHandler) Create(c *gin.Context) {
	var payload models.QuotePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	rc := middleware.Identity(c)
	q, err := h.Quotes.Create(c.Request.Context(), rc, payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "quotes", "create",
		"quote "+q.ID+" created, total "+utils.FormatAmount(q.Total.Amount, q.Total.Currency))
	c.JSON(http.StatusCreated, q)
}

// GET /api/quotes?status=&q=&page=&page_size=
func (h QuoteHandler) List(c *gin.Context) {
	rc := middleware.Identity(c)
	status := models.QuoteStatus(strings.TrimSpace(c.Query("status")))
	search := strings.TrimSpace(c.Query("q"))
	page, pageSize := PageParams(c)

	items, pg, err := h.Quotes.List(rc, status, search, page, pageSize)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": items, "pagination": pg})
}

// GET /api/quotes/:id
func (h QuoteHandler) Get(c *gin.Context) {
	q, err := h.Quotes.Get(middleware.Identity(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// PUT /api/quotes/:id
func (h QuoteHandler) Update(c *gin.Context) {
	var payload models.QuotePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	q, err := h.Quotes.Update(c.Request.Context(), middleware.Identity(c), c.Param("id"), payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /api/quotes/:id/send
func (h QuoteHandler) Send(c *gin.Context) { h.transition(c, models.QuoteSent) }

// POST /api/quotes/:id/view
//
// The read acknowledgment arrives from the client side, so this route skips
// the ownership check and is idempotent.
func (h QuoteHandler) View(c *gin.Context) { h.transition(c, models.QuoteViewed) }

// POST /api/quotes/:id/confirm
func (h QuoteHandler) Confirm(c *gin.Context) { h.transition(c, models.QuoteConfirmed) }

func (h QuoteHandler) transition(c *gin.Context, to models.QuoteStatus) {
	q, err := h.Quotes.Transition(middleware.Identity(c), c.Param("id"), to)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "quotes", "transition", "quote "+q.ID+" -> "+string(q.Status))
	c.JSON(http.StatusOK, q)
}

// POST /api/quotes/:id/duplicate
func (h QuoteHandler) Duplicate(c *gin.Context) {
	q, err := h.Quotes.Duplicate(middleware.Identity(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// DELETE /api/quotes/:id
func (h QuoteHandler) Delete(c *gin.Context) {
	if err := h.Quotes.Delete(middleware.Identity(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quote deleted"})
}

type calculateRequest struct {
	Kind        pricing.ItemKind         `json:"kind" binding:"required"`
	ItemID      string                   `json:"item_id" binding:"required"`
	TravelStart string                   `json:"travel_start" binding:"required"`
	TravelEnd   string                   `json:"travel_end"`
	Party       pricing.PartyComposition `json:"party"`
	Nights      uint                     `json:"nights"`

	DiscountMode pricing.DiscountMode `json:"discount_mode"`
	AgentTier    string               `json:"agent_tier"`
	MarkupType   pricing.MarkupType   `json:"markup_type"`
	MarkupValue  int64                `json:"markup_value"`
}

func (req calculateRequest) context() (pricing.PricingContext, error) {
	start, err := utils.ParseDate(req.TravelStart)
	if err != nil {
		return pricing.PricingContext{}, err
	}
	pc := pricing.PricingContext{
		Date:         start,
		Party:        req.Party,
		Nights:       req.Nights,
		DiscountMode: req.DiscountMode,
		MarkupType:   req.MarkupType,
		MarkupValue:  req.MarkupValue,
	}
	if strings.TrimSpace(req.TravelEnd) != "" {
		end, err := utils.ParseDate(req.TravelEnd)
		if err != nil {
			return pricing.PricingContext{}, err
		}
		pc.EndDate = end
	}
	return pc, nil
}

// POST /api/quotes/calculate
//
// Stateless single-item pricing: nothing is persisted, the response is the
// itemized breakdown.
func (h QuoteHandler) Calculate(c *gin.Context) {
	var req calculateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	pc, err := req.context()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "dates must be YYYY-MM-DD", err)
		return
	}

	tier := pricing.Tier(req.AgentTier)
	if req.DiscountMode != "" && tier == "" {
		agent, err := h.Agents.Get(middleware.Identity(c).AgentID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		tier = pricing.Tier(agent.Tier)
	}
	pc.AgentTier = tier

	breakdown, err := h.Pricing.PriceItem(req.Kind, req.ItemID, pc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

type bulkCalculateRequest struct {
	TravelStart string                   `json:"travel_start" binding:"required"`
	TravelEnd   string                   `json:"travel_end"`
	Party       pricing.PartyComposition `json:"party"`
	Tier        string                   `json:"tier"` // optional override; agent's stored tier when empty
	Items       []models.QuoteItem       `json:"items" binding:"required"`
}

type bulkItemResponse struct {
	Kind      pricing.ItemKind   `json:"item_kind"`
	ItemID    string             `json:"item_id"`
	Breakdown *pricing.Breakdown `json:"breakdown,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// POST /api/quotes/bulk-calculate
//
// Best-effort: each item prices independently and failures show up inline.
// The aggregate block is present only when every item succeeded.
func (h QuoteHandler) BulkCalculate(c *gin.Context) {
	var req bulkCalculateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	start, err := utils.ParseDate(req.TravelStart)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "travel_start must be YYYY-MM-DD", err)
		return
	}
	var end time.Time
	if strings.TrimSpace(req.TravelEnd) != "" {
		end, err = utils.ParseDate(req.TravelEnd)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "travel_end must be YYYY-MM-DD", err)
			return
		}
	}

	items := make([]pricing.BulkItem, 0, len(req.Items))
	for _, it := range req.Items {
		pc := pricing.PricingContext{
			Date:         start,
			EndDate:      end,
			Party:        req.Party,
			Nights:       it.Nights,
			DiscountMode: it.DiscountMode,
			MarkupType:   it.MarkupType,
			MarkupValue:  it.MarkupValue,
		}
		items = append(items, pricing.BulkItem{Kind: it.Kind, ID: it.ItemID, Context: pc})
	}

	rc := middleware.Identity(c)
	result, err := h.Pricing.BulkCalculate(c.Request.Context(), rc.AgentID, pricing.Tier(req.Tier), items)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]bulkItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		resp := bulkItemResponse{Kind: item.Kind, ItemID: item.ID, Breakdown: item.Breakdown}
		if item.Err != nil {
			resp.Error = item.Err.Error()
		}
		out = append(out, resp)
	}

	body := gin.H{
		"items":            out,
		"agent_tier":       result.AgentTier,
		"discount_percent": result.DiscountPercent,
		"all_succeeded":    result.AllSucceeded(),
	}
	if result.AllSucceeded() {
		body["subtotal"] = result.Subtotal
		body["agent_discount"] = result.AgentDiscount
		body["total"] = result.Total
	}
	c.JSON(http.StatusOK, body)
}
