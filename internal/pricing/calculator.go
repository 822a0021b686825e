package pricing

// Breakdown is the itemized pricing result for one bookable item. The final
// price is always reproducible from the other fields:
//
//	FinalPrice = BasePrice + SeasonalAdjustment + AllocationCost + VehicleCost
//	           - TierDiscount + Markup
//
// and that identity is kept exact, not approximate, by deriving TierDiscount
// and Markup from the same fixed-point chain that produced FinalPrice.
type Breakdown struct {
	ItemKind ItemKind `json:"item_kind"`
	ItemID   string   `json:"item_id"`

	BasePrice          Money `json:"base_price"`
	SeasonalAdjustment Money `json:"seasonal_adjustment"`
	AllocationCost     Money `json:"allocation_cost"`
	VehicleCost        Money `json:"vehicle_cost"`
	Subtotal           Money `json:"subtotal"`
	TierDiscount       Money `json:"tier_discount"`
	Markup             Money `json:"markup"`
	FinalPrice         Money `json:"final_price"`

	Rooms       uint   `json:"rooms,omitempty"`
	ExtraBeds   uint   `json:"extra_beds,omitempty"`
	VehicleType string `json:"vehicle_type,omitempty"`
}

// Calculator composes rate resolution, room allocation, vehicle selection and
// tier discounting into one line-item price. It is stateless: every call
// reads injected snapshots and nothing else, so calls may run in parallel.
type Calculator struct {
	Catalog   Catalog
	Rates     RateSource
	Vehicles  []VehicleClass // DefaultVehicleClasses when empty
	Discounts DiscountTable  // DefaultTierDiscounts when nil

	// ExtraBedSurcharge is charged per extra bed per night. Zero by default.
	ExtraBedSurcharge Money
}

func (c Calculator) discounts() DiscountTable {
	if c.Discounts != nil {
		return c.Discounts
	}
	return DefaultTierDiscounts
}

// PriceItem prices one item for the given context. Validation happens before
// any pricing sub-step, so a rejected input never partially computes.
func (c Calculator) PriceItem(kind ItemKind, id string, pc PricingContext) (Breakdown, error) {
	if !kind.Valid() {
		return Breakdown{}, ItemNotFoundError{Kind: kind, ID: id}
	}
	if err := pc.Validate(); err != nil {
		return Breakdown{}, err
	}
	if pc.Party.Total() == 0 {
		return Breakdown{}, InvalidPartyCompositionError{Msg: "at least one traveler is required"}
	}

	item, err := c.Catalog.Item(kind, id)
	if err != nil {
		if IsItemNotFound(err) {
			return Breakdown{}, err
		}
		return Breakdown{}, ItemNotFoundError{Kind: kind, ID: id, Err: err}
	}

	resolver := Resolver{Catalog: c.Catalog, Rates: c.Rates}
	rate, err := resolver.rateFor(item, pc.Date, pc.lastNight())
	if err != nil {
		return Breakdown{}, err
	}

	currency := rate.Currency
	if currency == "" {
		currency = item.BasePrice.Currency
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	bd := Breakdown{ItemKind: kind, ItemID: id}

	var quantity int64 = 1
	var allocationCost, vehicleCost int64

	switch kind {
	case ItemHotelRoom:
		nights := c.nightsFor(pc)
		alloc := AllocateRooms(pc.Party)
		bd.Rooms = alloc.Rooms
		bd.ExtraBeds = alloc.ExtraBeds
		quantity = int64(nights) * int64(alloc.Rooms)
		allocationCost = c.ExtraBedSurcharge.Amount * int64(alloc.ExtraBeds) * int64(nights)
	case ItemPackage:
		if item.NeedsTransport {
			vehicle, err := SelectVehicle(c.Vehicles, pc.Party.Total())
			if err != nil {
				return Breakdown{}, err
			}
			days := int64(item.Duration)
			if days < 1 {
				days = 1
			}
			vehicleCost = vehicle.PricePerDay.Amount * days
			bd.VehicleType = vehicle.Type
		}
	default: // activities and add-ons scale per pax
		quantity = int64(pc.Party.Total())
	}

	basePart, err := checkedMul(item.BasePrice.Amount, quantity)
	if err != nil {
		return Breakdown{}, err
	}
	ratePart, err := checkedMul(rate.Amount, quantity)
	if err != nil {
		return Breakdown{}, err
	}
	subtotal := ratePart + allocationCost + vehicleCost

	discountedScaled, scale, err := c.applyTierDiscount(subtotal, pc, currency)
	if err != nil {
		return Breakdown{}, err
	}
	discounted := roundHalfUpDiv(discountedScaled, scale)

	finalScaled, scale, err := applyMarkup(discountedScaled, scale, pc)
	if err != nil {
		return Breakdown{}, err
	}
	// The one rounding step of the whole formula.
	final := roundHalfUpDiv(finalScaled, scale)

	bd.BasePrice = NewMoney(basePart, currency)
	bd.SeasonalAdjustment = NewMoney(ratePart-basePart, currency)
	bd.AllocationCost = NewMoney(allocationCost, currency)
	bd.VehicleCost = NewMoney(vehicleCost, currency)
	bd.Subtotal = NewMoney(subtotal, currency)
	bd.TierDiscount = NewMoney(subtotal-discounted, currency)
	bd.Markup = NewMoney(final-discounted, currency)
	bd.FinalPrice = NewMoney(final, currency)
	return bd, nil
}

func (c Calculator) nightsFor(pc PricingContext) uint {
	if pc.Nights > 0 {
		return pc.Nights
	}
	if !pc.EndDate.IsZero() {
		if d := pc.EndDate.Sub(pc.Date).Hours() / 24; d >= 1 {
			return uint(d)
		}
	}
	return 1
}

// applyTierDiscount returns the discounted subtotal as a fixed-point value
// plus its scale, so the markup step can extend the same chain and rounding
// happens exactly once at the end.
func (c Calculator) applyTierDiscount(subtotal int64, pc PricingContext, currency string) (int64, int64, error) {
	table := c.discounts()
	switch pc.DiscountMode {
	case DiscountFlat:
		flat := table.FlatAmount(pc.AgentTier, pc.Party.Total(), currency)
		discounted := subtotal - flat.Amount
		if discounted < 0 {
			discounted = 0
		}
		return discounted, 1, nil
	default: // percentage
		bp := table.BasisPoints(pc.AgentTier)
		if bp < 0 || bp > bpScale {
			bp = 0
		}
		scaled, err := checkedMul(subtotal, bpScale-bp)
		if err != nil {
			return 0, 0, err
		}
		return scaled, bpScale, nil
	}
}

func applyMarkup(scaled, scale int64, pc PricingContext) (int64, int64, error) {
	switch pc.MarkupType {
	case MarkupPercentage:
		out, err := checkedMul(scaled, bpScale+pc.MarkupValue)
		if err != nil {
			return 0, 0, err
		}
		return out, scale * bpScale, nil
	case MarkupFixed:
		add, err := checkedMul(pc.MarkupValue, scale)
		if err != nil {
			return 0, 0, err
		}
		return scaled + add, scale, nil
	default:
		return scaled, scale, nil
	}
}
