package pricing

import (
	"testing"
	"time"
)

type stubCatalog map[string]Item

func (s stubCatalog) Item(kind ItemKind, id string) (Item, error) {
	if item, ok := s[string(kind)+"/"+id]; ok {
		return item, nil
	}
	return Item{}, ItemNotFoundError{Kind: kind, ID: id}
}

type stubRates []SeasonalRate

func (s stubRates) Rates(kind ItemKind, id string, from, to time.Time) ([]SeasonalRate, error) {
	var out []SeasonalRate
	for _, sr := range s {
		if sr.ItemKind == kind && sr.ItemID == id {
			out = append(out, sr)
		}
	}
	return out, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testCatalog() stubCatalog {
	return stubCatalog{
		"package/bali": {
			Kind: ItemPackage, ID: "bali", Name: "Bali Explorer",
			BasePrice: Money{Amount: 10000, Currency: "USD"},
			Duration:  3, NeedsTransport: true,
		},
		"hotel_room/deluxe": {
			Kind: ItemHotelRoom, ID: "deluxe", Name: "Deluxe Room",
			BasePrice: Money{Amount: 12000, Currency: "USD"},
		},
		"add_on/spa": {
			Kind: ItemAddOn, ID: "spa", Name: "Spa Day",
			BasePrice: Money{Amount: 3000, Currency: "USD"},
		},
	}
}

func TestResolveFallsBackToBasePrice(t *testing.T) {
	r := Resolver{Catalog: testCatalog(), Rates: stubRates(nil)}
	got, err := r.Resolve(ItemPackage, "bali", day("2026-03-10"), day("2026-03-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 10000 {
		t.Fatalf("expected base price 10000, got %d", got.Amount)
	}
}

func TestResolvePicksIntersectingRate(t *testing.T) {
	rates := stubRates{
		{ID: "r1", ItemKind: ItemPackage, ItemID: "bali",
			StartDate: day("2026-07-01"), EndDate: day("2026-08-31"),
			Rate: Money{Amount: 15000, Currency: "USD"}, IsActive: true},
	}
	r := Resolver{Catalog: testCatalog(), Rates: rates}

	got, err := r.Resolve(ItemPackage, "bali", day("2026-07-15"), day("2026-07-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 15000 {
		t.Fatalf("expected seasonal rate 15000, got %d", got.Amount)
	}

	// outside the window the base price applies
	got, err = r.Resolve(ItemPackage, "bali", day("2026-09-01"), day("2026-09-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 10000 {
		t.Fatalf("expected base price outside season, got %d", got.Amount)
	}
}

func TestResolveWindowEdgesInclusive(t *testing.T) {
	rates := stubRates{
		{ID: "r1", ItemKind: ItemPackage, ItemID: "bali",
			StartDate: day("2026-07-01"), EndDate: day("2026-08-31"),
			Rate: Money{Amount: 15000, Currency: "USD"}, IsActive: true},
	}
	r := Resolver{Catalog: testCatalog(), Rates: rates}
	for _, d := range []string{"2026-07-01", "2026-08-31"} {
		got, err := r.Resolve(ItemPackage, "bali", day(d), day(d))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", d, err)
		}
		if got.Amount != 15000 {
			t.Fatalf("%s: window edge should match, got %d", d, got.Amount)
		}
	}
}

func TestResolveLatestStartDateWins(t *testing.T) {
	rates := stubRates{
		{ID: "broad", ItemKind: ItemPackage, ItemID: "bali",
			StartDate: day("2026-06-01"), EndDate: day("2026-09-30"),
			Rate: Money{Amount: 13000, Currency: "USD"}, IsActive: true},
		{ID: "narrow", ItemKind: ItemPackage, ItemID: "bali",
			StartDate: day("2026-07-20"), EndDate: day("2026-08-05"),
			Rate: Money{Amount: 18000, Currency: "USD"}, IsActive: true},
	}
	r := Resolver{Catalog: testCatalog(), Rates: rates}
	got, err := r.Resolve(ItemPackage, "bali", day("2026-07-25"), day("2026-07-25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 18000 {
		t.Fatalf("most recently defined season should win, got %d", got.Amount)
	}
}

func TestResolveIgnoresInactiveRates(t *testing.T) {
	rates := stubRates{
		{ID: "r1", ItemKind: ItemPackage, ItemID: "bali",
			StartDate: day("2026-07-01"), EndDate: day("2026-08-31"),
			Rate: Money{Amount: 15000, Currency: "USD"}, IsActive: false},
	}
	r := Resolver{Catalog: testCatalog(), Rates: rates}
	got, err := r.Resolve(ItemPackage, "bali", day("2026-07-15"), day("2026-07-15"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 10000 {
		t.Fatalf("inactive rate must be invisible, got %d", got.Amount)
	}
}

func TestResolveStayWindowIntersection(t *testing.T) {
	rates := stubRates{
		{ID: "r1", ItemKind: ItemHotelRoom, ItemID: "deluxe",
			StartDate: day("2026-12-20"), EndDate: day("2027-01-05"),
			Rate: Money{Amount: 20000, Currency: "USD"}, IsActive: true},
	}
	r := Resolver{Catalog: testCatalog(), Rates: rates}
	// stay starts before the season but the last night falls inside it
	got, err := r.Resolve(ItemHotelRoom, "deluxe", day("2026-12-18"), day("2026-12-22"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Amount != 20000 {
		t.Fatalf("stay window intersecting the season should match, got %d", got.Amount)
	}
}

func TestResolveMissingItem(t *testing.T) {
	r := Resolver{Catalog: testCatalog(), Rates: stubRates(nil)}
	_, err := r.Resolve(ItemPackage, "ghost", day("2026-03-10"), day("2026-03-10"))
	if err == nil {
		t.Fatal("expected error for unknown item")
	}
	if !IsRateNotFound(err) {
		t.Fatalf("expected RateNotFoundError, got %v", err)
	}
}
