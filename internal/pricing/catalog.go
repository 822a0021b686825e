package pricing

import "time"

// Item is the engine-side view of a bookable catalog entry. The engine only
// cares about the base price and the quantity semantics of the kind; the rest
// of the catalog row stays behind the repository.
type Item struct {
	Kind      ItemKind
	ID        string
	Name      string
	BasePrice Money
	// Duration in days; meaningful for packages (vehicle cost scales with it).
	Duration uint
	// NeedsTransport marks trip-level items priced with a vehicle component.
	NeedsTransport bool
}

// SeasonalRate is a date-ranged override of an item's base price. Windows are
// inclusive on both ends. Inactive rates are invisible to resolution.
type SeasonalRate struct {
	ID        string
	ItemKind  ItemKind
	ItemID    string
	StartDate time.Time
	EndDate   time.Time
	Rate      Money
	IsActive  bool
}

// Catalog is the injected item lookup. Implementations must return a
// point-in-time read; the engine never re-reads mid-calculation.
type Catalog interface {
	Item(kind ItemKind, id string) (Item, error)
}

// RateSource returns the seasonal rates that could apply to an item within a
// date window, as a snapshot.
type RateSource interface {
	Rates(kind ItemKind, id string, from, to time.Time) ([]SeasonalRate, error)
}

// AgentSource is consulted only to default the agent tier when a bulk request
// does not override it.
type AgentSource interface {
	TierOf(agentID string) (Tier, error)
}
