package pricing

import "time"

// ItemKind selects the quantity semantics of a bookable item: per-trip for
// packages, per-night for hotel rooms, per-pax for activities and add-ons.
type ItemKind string

const (
	ItemPackage   ItemKind = "package"
	ItemHotelRoom ItemKind = "hotel_room"
	ItemActivity  ItemKind = "activity"
	ItemAddOn     ItemKind = "add_on"
)

func (k ItemKind) Valid() bool {
	switch k {
	case ItemPackage, ItemHotelRoom, ItemActivity, ItemAddOn:
		return true
	}
	return false
}

// PerPax reports whether the item rate scales with the party total.
func (k ItemKind) PerPax() bool {
	return k == ItemActivity || k == ItemAddOn
}

// PartyComposition describes who travels. Children without a bed occupy no
// room capacity but still count for headcount and per-pax pricing.
type PartyComposition struct {
	Adults             uint `json:"adults"`
	ChildrenWithBed    uint `json:"children_with_bed"`
	ChildrenWithoutBed uint `json:"children_without_bed"`
}

func (p PartyComposition) Total() uint {
	return p.Adults + p.ChildrenWithBed + p.ChildrenWithoutBed
}

// BedOccupants excludes children without a bed from room math on purpose;
// that exclusion is pricing policy.
func (p PartyComposition) BedOccupants() uint {
	return p.Adults + p.ChildrenWithBed
}

type MarkupType string

const (
	MarkupNone       MarkupType = ""
	MarkupPercentage MarkupType = "percentage"
	MarkupFixed      MarkupType = "fixed"
)

// DiscountMode selects how the tier discount is applied at the item level.
// Flat subtracts the tier value as whole currency units per traveler (legacy
// behavior); Percentage multiplies the subtotal by (1 - pct/100). Both modes
// exist in issued quotes, so neither may be unified away.
type DiscountMode string

const (
	DiscountPercentage DiscountMode = "percentage"
	DiscountFlat       DiscountMode = "flat"
)

// PricingContext is the immutable bundle of trip parameters for one pricing
// calculation. Construct one per item; never mutate it.
type PricingContext struct {
	Date    time.Time
	EndDate time.Time // exclusive range end for multi-night stays; zero means single date
	Party   PartyComposition
	Nights  uint

	AgentTier    Tier
	DiscountMode DiscountMode

	MarkupType MarkupType
	// MarkupValue is basis points when MarkupType is percentage, minor units
	// when fixed.
	MarkupValue int64
}

// Validate rejects a context before any pricing sub-step runs, so a bad input
// never partially computes.
func (pc PricingContext) Validate() error {
	if pc.Date.IsZero() {
		return InvalidPartyCompositionError{Msg: "travel date is required"}
	}
	if !pc.EndDate.IsZero() && !pc.EndDate.After(pc.Date) {
		return InvalidPartyCompositionError{Msg: "date range is empty"}
	}
	switch pc.MarkupType {
	case MarkupNone, MarkupPercentage, MarkupFixed:
	default:
		return InvalidMarkupError{Msg: "unknown markup type " + string(pc.MarkupType)}
	}
	if pc.MarkupType != MarkupNone && pc.MarkupValue < 0 {
		return InvalidMarkupError{Msg: "markup value cannot be negative"}
	}
	switch pc.DiscountMode {
	case "", DiscountPercentage, DiscountFlat:
	default:
		return InvalidPartyCompositionError{Msg: "unknown discount mode " + string(pc.DiscountMode)}
	}
	return nil
}

// lastNight is the inclusive end of the stay window used for rate matching.
func (pc PricingContext) lastNight() time.Time {
	if pc.EndDate.IsZero() {
		return pc.Date
	}
	return pc.EndDate.AddDate(0, 0, -1)
}
