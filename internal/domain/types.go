package domain

// Pagination carries paging params and totals for list endpoints.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total,omitempty"`
	Pages    int `json:"pages,omitempty"`
}

// PageCount derives the page total once Total is known.
func (p Pagination) PageCount() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// RequestContext carries the resolved agent identity. Identity is resolved
// before any pricing call; the engine itself never sees credentials.
type RequestContext struct {
	AgentID string `json:"agent_id"`
	Role    string `json:"role"` // agent / admin
}

func (rc RequestContext) IsAdmin() bool { return rc.Role == "admin" }
