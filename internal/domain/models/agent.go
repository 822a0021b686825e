package models

// Agent is a travel-agency partner. Tier is recalculated from cumulative pax
// elsewhere; quotes capture the discount percentage at calculation time, so a
// tier change here never rewrites an issued quote.
type Agent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	AgencyName   string `json:"agency_name,omitempty"`
	Tier         string `json:"tier"`
	TotalPax     int64  `json:"total_pax"`
	Status       string `json:"status"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// TierProgress summarizes how far an agent is from the next tier.
type TierProgress struct {
	CurrentTier        string  `json:"current_tier"`
	TotalPax           int64   `json:"total_pax"`
	NextTier           string  `json:"next_tier,omitempty"`
	NextTierMinPax     int64   `json:"next_tier_min_pax,omitempty"`
	ProgressPercentage float64 `json:"progress_percentage"`
}
