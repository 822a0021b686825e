package models

import (
	"time"

	"travelbackend/internal/pricing"
)

// QuoteStatus values for the quote lifecycle. Transitions are enforced in
// internal/quotes; nothing else may move a quote between states.
type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteSent      QuoteStatus = "sent"
	QuoteViewed    QuoteStatus = "viewed"
	QuoteConfirmed QuoteStatus = "confirmed"
	QuoteExpired   QuoteStatus = "expired"
)

// QuoteItem is one bookable line of a quote: the item reference plus the
// per-item knobs of its pricing context. Trip dates and party composition are
// quote-level and shared across items.
type QuoteItem struct {
	Kind         pricing.ItemKind     `json:"kind"`
	ItemID       string               `json:"item_id"`
	Nights       uint                 `json:"nights,omitempty"`
	DiscountMode pricing.DiscountMode `json:"discount_mode,omitempty"`
	MarkupType   pricing.MarkupType   `json:"markup_type,omitempty"`
	MarkupValue  int64                `json:"markup_value,omitempty"`
}

// Quote aggregates priced items plus trip-level metadata. It is owned by the
// agent who created it and mutated only through lifecycle transitions and
// draft recalculation.
type Quote struct {
	ID          string `json:"id"`
	AgentID     string `json:"agent_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone,omitempty"`

	TravelStart string                   `json:"travel_start"` // YYYY-MM-DD
	TravelEnd   string                   `json:"travel_end,omitempty"`
	Party       pricing.PartyComposition `json:"party"`
	Items       []QuoteItem              `json:"items"`

	// Priced snapshot, frozen once the quote leaves draft.
	Pricing         []pricing.Breakdown `json:"pricing"`
	Subtotal        pricing.Money       `json:"subtotal"`
	AgentDiscount   pricing.Money       `json:"agent_discount"`
	Total           pricing.Money       `json:"total"`
	AgentTier       string              `json:"agent_tier"`
	DiscountPercent int64               `json:"discount_percent"`

	Status     QuoteStatus `json:"status"`
	ValidUntil time.Time   `json:"valid_until"`
	Notes      string      `json:"notes,omitempty"`
	CreatedAt  time.Time   `json:"created_at,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at,omitempty"`
}

// QuotePayload binds quote create/update requests.
type QuotePayload struct {
	ClientName  string                   `json:"client_name" binding:"required"`
	ClientEmail string                   `json:"client_email" binding:"required"`
	ClientPhone string                   `json:"client_phone"`
	TravelStart string                   `json:"travel_start" binding:"required"`
	TravelEnd   string                   `json:"travel_end"`
	Party       pricing.PartyComposition `json:"party"`
	Items       []QuoteItem              `json:"items" binding:"required"`
	Notes       string                   `json:"notes"`
}
