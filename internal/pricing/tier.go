package pricing

// Tier is an agent's standing. Discount percentages are monotonically
// non-decreasing with rank.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// TierRank orders tiers for progress reporting; unknown tiers rank lowest.
func TierRank(t Tier) int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	}
	return 0
}

// DiscountTable maps a tier to its discount value. The same number serves
// both call sites: read as whole percent in percentage mode, and as whole
// currency units per traveler in legacy flat mode.
type DiscountTable map[Tier]int64

// DefaultTierDiscounts mirrors the published agent program.
var DefaultTierDiscounts = DiscountTable{
	TierBronze:   5,
	TierSilver:   10,
	TierGold:     15,
	TierPlatinum: 20,
}

// TierMinPax is the cumulative-pax threshold at which an agent reaches each
// tier.
var TierMinPax = map[Tier]int64{
	TierBronze:   0,
	TierSilver:   50,
	TierGold:     200,
	TierPlatinum: 500,
}

// TierForPax maps cumulative pax to the tier an agent has earned.
func TierForPax(totalPax int64) Tier {
	switch {
	case totalPax >= TierMinPax[TierPlatinum]:
		return TierPlatinum
	case totalPax >= TierMinPax[TierGold]:
		return TierGold
	case totalPax >= TierMinPax[TierSilver]:
		return TierSilver
	default:
		return TierBronze
	}
}

// NextTier returns the tier above t, if any.
func NextTier(t Tier) (Tier, bool) {
	switch t {
	case TierBronze:
		return TierSilver, true
	case TierSilver:
		return TierGold, true
	case TierGold:
		return TierPlatinum, true
	}
	return "", false
}

// Percent returns the tier's discount as whole percent; unknown tiers get 0.
func (t DiscountTable) Percent(tier Tier) int64 {
	return t[tier]
}

// BasisPoints returns the tier's discount in basis points.
func (t DiscountTable) BasisPoints(tier Tier) int64 {
	return t[tier] * 100
}

// FlatAmount is the legacy per-item discount: the tier value in whole
// currency units, once per traveler.
func (t DiscountTable) FlatAmount(tier Tier, paxTotal uint, currency string) Money {
	return NewMoney(t[tier]*100*int64(paxTotal), currency)
}
