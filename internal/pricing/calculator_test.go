package pricing

import (
	"testing"
)

func testCalculator(rates stubRates) Calculator {
	return Calculator{Catalog: testCatalog(), Rates: rates}
}

// Worked example: deluxe room at 120.00/night, 4 adults over 2 nights means
// 2 rooms x 2 nights = 480.00; gold 15% off = 408.00; fixed 50.00 markup =
// 458.00.
func TestPriceItemWorkedExample(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:         day("2026-03-10"),
		EndDate:      day("2026-03-12"),
		Party:        PartyComposition{Adults: 4},
		AgentTier:    TierGold,
		DiscountMode: DiscountPercentage,
		MarkupType:   MarkupFixed,
		MarkupValue:  5000,
	}
	bd, err := c.PriceItem(ItemHotelRoom, "deluxe", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.Rooms != 2 {
		t.Fatalf("rooms = %d, want 2", bd.Rooms)
	}
	if bd.Subtotal.Amount != 48000 {
		t.Fatalf("subtotal = %d, want 48000", bd.Subtotal.Amount)
	}
	if bd.TierDiscount.Amount != 7200 {
		t.Fatalf("tier discount = %d, want 7200", bd.TierDiscount.Amount)
	}
	if bd.Markup.Amount != 5000 {
		t.Fatalf("markup = %d, want 5000", bd.Markup.Amount)
	}
	if bd.FinalPrice.Amount != 45800 {
		t.Fatalf("final = %d, want 45800", bd.FinalPrice.Amount)
	}
	assertBreakdownIdentity(t, bd)
}

func assertBreakdownIdentity(t *testing.T, bd Breakdown) {
	t.Helper()
	sum := bd.BasePrice.Amount + bd.SeasonalAdjustment.Amount + bd.AllocationCost.Amount +
		bd.VehicleCost.Amount - bd.TierDiscount.Amount + bd.Markup.Amount
	if sum != bd.FinalPrice.Amount {
		t.Fatalf("breakdown does not reproduce final price: %d != %d", sum, bd.FinalPrice.Amount)
	}
}

func TestPriceItemPackageWithVehicle(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:  day("2026-03-10"),
		Party: PartyComposition{Adults: 4},
	}
	bd, err := c.PriceItem(ItemPackage, "bali", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// package is per trip, not per pax
	if bd.BasePrice.Amount != 10000 {
		t.Fatalf("base = %d, want 10000", bd.BasePrice.Amount)
	}
	if bd.VehicleType != "Avanza" {
		t.Fatalf("vehicle = %s, want Avanza", bd.VehicleType)
	}
	// 3500/day over the package's 3 days
	if bd.VehicleCost.Amount != 10500 {
		t.Fatalf("vehicle cost = %d, want 10500", bd.VehicleCost.Amount)
	}
	if bd.FinalPrice.Amount != 20500 {
		t.Fatalf("final = %d, want 20500", bd.FinalPrice.Amount)
	}
	assertBreakdownIdentity(t, bd)
}

func TestPriceItemPackageOverCapacity(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:  day("2026-03-10"),
		Party: PartyComposition{Adults: 26},
	}
	_, err := c.PriceItem(ItemPackage, "bali", pc)
	if !IsCapacityExceeded(err) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
}

func TestPriceItemAddOnPerPax(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:  day("2026-03-10"),
		Party: PartyComposition{Adults: 2, ChildrenWithoutBed: 1},
	}
	bd, err := c.PriceItem(ItemAddOn, "spa", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// children without a bed still count for per-pax items
	if bd.FinalPrice.Amount != 9000 {
		t.Fatalf("final = %d, want 9000 (3 pax x 3000)", bd.FinalPrice.Amount)
	}
	assertBreakdownIdentity(t, bd)
}

func TestPriceItemSeasonalAdjustment(t *testing.T) {
	rates := stubRates{
		{ID: "peak", ItemKind: ItemAddOn, ItemID: "spa",
			StartDate: day("2026-07-01"), EndDate: day("2026-08-31"),
			Rate: Money{Amount: 4000, Currency: "USD"}, IsActive: true},
	}
	c := testCalculator(rates)
	pc := PricingContext{
		Date:  day("2026-07-15"),
		Party: PartyComposition{Adults: 2},
	}
	bd, err := c.PriceItem(ItemAddOn, "spa", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.BasePrice.Amount != 6000 {
		t.Fatalf("base = %d, want 6000", bd.BasePrice.Amount)
	}
	if bd.SeasonalAdjustment.Amount != 2000 {
		t.Fatalf("seasonal adjustment = %d, want 2000", bd.SeasonalAdjustment.Amount)
	}
	if bd.FinalPrice.Amount != 8000 {
		t.Fatalf("final = %d, want 8000", bd.FinalPrice.Amount)
	}
	assertBreakdownIdentity(t, bd)
}

func TestPriceItemFlatDiscountClampsAtZero(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:         day("2026-03-10"),
		Party:        PartyComposition{Adults: 10},
		AgentTier:    TierPlatinum,
		DiscountMode: DiscountFlat,
	}
	// 10 pax x 30.00 = 300.00 subtotal; flat 20.00 x 10 pax = 200.00 off
	bd, err := c.PriceItem(ItemAddOn, "spa", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.FinalPrice.Amount != 10000 {
		t.Fatalf("final = %d, want 10000", bd.FinalPrice.Amount)
	}

	// tiny subtotal: the flat discount may not push the price below zero
	pc.Party = PartyComposition{Adults: 1}
	small := testCalculator(nil)
	small.Catalog = stubCatalog{
		"add_on/cheap": {Kind: ItemAddOn, ID: "cheap", BasePrice: Money{Amount: 500, Currency: "USD"}},
	}
	bd, err = small.PriceItem(ItemAddOn, "cheap", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.FinalPrice.Amount != 0 {
		t.Fatalf("final = %d, want 0 after clamp", bd.FinalPrice.Amount)
	}
	assertBreakdownIdentity(t, bd)
}

func TestPriceItemPercentageMarkupSingleRounding(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:         day("2026-03-10"),
		Party:        PartyComposition{Adults: 1},
		AgentTier:    TierBronze,
		DiscountMode: DiscountPercentage,
		MarkupType:   MarkupPercentage,
		MarkupValue:  BasisPoints(12.5),
	}
	bd, err := c.PriceItem(ItemAddOn, "spa", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3000 * 0.95 * 1.125 = 3206.25, rounded half up once at the end
	if bd.FinalPrice.Amount != 3206 {
		t.Fatalf("final = %d, want 3206", bd.FinalPrice.Amount)
	}
	assertBreakdownIdentity(t, bd)
}

func TestPriceItemHotelAllocation(t *testing.T) {
	c := testCalculator(nil)
	c.ExtraBedSurcharge = Money{Amount: 1500, Currency: "USD"}
	pc := PricingContext{
		Date:   day("2026-03-10"),
		Party:  PartyComposition{Adults: 3},
		Nights: 2,
	}
	bd, err := c.PriceItem(ItemHotelRoom, "deluxe", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.Rooms != 2 || bd.ExtraBeds != 0 {
		t.Fatalf("allocation = %d rooms %d extras, want 2/0", bd.Rooms, bd.ExtraBeds)
	}
	if bd.AllocationCost.Amount != 0 {
		t.Fatalf("allocation cost = %d, want 0", bd.AllocationCost.Amount)
	}
	// 2 rooms x 2 nights x 120.00
	if bd.FinalPrice.Amount != 48000 {
		t.Fatalf("final = %d, want 48000", bd.FinalPrice.Amount)
	}
	assertBreakdownIdentity(t, bd)
}

func TestPriceItemIdempotent(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:         day("2026-03-10"),
		EndDate:      day("2026-03-13"),
		Party:        PartyComposition{Adults: 5, ChildrenWithBed: 1},
		AgentTier:    TierSilver,
		DiscountMode: DiscountPercentage,
		MarkupType:   MarkupPercentage,
		MarkupValue:  BasisPoints(8),
	}
	first, err := c.PriceItem(ItemHotelRoom, "deluxe", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.PriceItem(ItemHotelRoom, "deluxe", pc)
		if err != nil {
			t.Fatalf("repeat %d: unexpected error: %v", i, err)
		}
		if again != first {
			t.Fatalf("repeat %d: result drifted: %+v != %+v", i, again, first)
		}
	}
}

func TestPriceItemRejectsBadInput(t *testing.T) {
	c := testCalculator(nil)

	_, err := c.PriceItem(ItemAddOn, "spa", PricingContext{Date: day("2026-03-10")})
	if !IsInvalidPartyComposition(err) {
		t.Fatalf("empty party: expected InvalidPartyCompositionError, got %v", err)
	}

	_, err = c.PriceItem(ItemAddOn, "spa", PricingContext{
		Date:        day("2026-03-10"),
		Party:       PartyComposition{Adults: 1},
		MarkupType:  MarkupType("weird"),
		MarkupValue: 10,
	})
	if !IsInvalidMarkup(err) {
		t.Fatalf("unknown markup type: expected InvalidMarkupError, got %v", err)
	}

	_, err = c.PriceItem(ItemAddOn, "ghost", PricingContext{
		Date:  day("2026-03-10"),
		Party: PartyComposition{Adults: 1},
	})
	if !IsItemNotFound(err) {
		t.Fatalf("unknown item: expected ItemNotFoundError, got %v", err)
	}

	_, err = c.PriceItem(ItemKind("cruise"), "x", PricingContext{
		Date:  day("2026-03-10"),
		Party: PartyComposition{Adults: 1},
	})
	if !IsItemNotFound(err) {
		t.Fatalf("unknown kind: expected ItemNotFoundError, got %v", err)
	}
}

func TestPriceItemNoDiscountWithoutTier(t *testing.T) {
	c := testCalculator(nil)
	pc := PricingContext{
		Date:         day("2026-03-10"),
		Party:        PartyComposition{Adults: 2},
		DiscountMode: DiscountPercentage,
		// AgentTier deliberately empty: unknown tier means zero discount
	}
	bd, err := c.PriceItem(ItemAddOn, "spa", pc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bd.TierDiscount.Amount != 0 {
		t.Fatalf("tier discount = %d, want 0 without a tier", bd.TierDiscount.Amount)
	}
	if bd.FinalPrice.Amount != 6000 {
		t.Fatalf("final = %d, want 6000", bd.FinalPrice.Amount)
	}
}
