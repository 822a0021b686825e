package models

// SeasonalRate is a date-ranged price override for a catalog item. Dates are
// stored as YYYY-MM-DD strings like the rest of the persistence layer; the
// repository converts them for the pricing engine. A soft-deleted rate keeps
// its row with is_active=false and becomes invisible to rate resolution.
type SeasonalRate struct {
	ID         string `json:"id"`
	ItemKind   string `json:"item_kind"`
	ItemID     string `json:"item_id"`
	SeasonName string `json:"season_name"`
	SeasonType string `json:"season_type,omitempty"` // peak, high, shoulder, low
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Rate       int64  `json:"rate"` // minor units
	Currency   string `json:"currency"`
	MinStay    uint   `json:"min_stay,omitempty"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// SeasonalRatePayload binds rate create/update requests.
type SeasonalRatePayload struct {
	ItemKind   string `json:"item_kind" binding:"required"`
	ItemID     string `json:"item_id" binding:"required"`
	SeasonName string `json:"season_name" binding:"required"`
	SeasonType string `json:"season_type"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Rate       int64  `json:"rate" binding:"required"`
	Currency   string `json:"currency"`
	MinStay    uint   `json:"min_stay"`
}
