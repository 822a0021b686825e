package pricing

import "time"

// Resolver picks the rate in effect for an item on a date or stay window,
// falling back to the item's base price when no seasonal rate matches.
type Resolver struct {
	Catalog Catalog
	Rates   RateSource
}

// Resolve looks the item up and returns the applicable rate for [from, to]
// (inclusive; pass to equal to from for a single date). A missing item is the
// only failure: no seasonal rate is never an error because the base price is
// always a safe fallback.
func (r Resolver) Resolve(kind ItemKind, id string, from, to time.Time) (Money, error) {
	item, err := r.Catalog.Item(kind, id)
	if err != nil {
		return Money{}, RateNotFoundError{Kind: kind, ID: id, Err: err}
	}
	return r.rateFor(item, from, to)
}

func (r Resolver) rateFor(item Item, from, to time.Time) (Money, error) {
	if to.Before(from) {
		to = from
	}
	if r.Rates == nil {
		return item.BasePrice, nil
	}
	rates, err := r.Rates.Rates(item.Kind, item.ID, from, to)
	if err != nil {
		return Money{}, err
	}
	if best, ok := applicableRate(rates, from, to); ok {
		return best.Rate, nil
	}
	return item.BasePrice, nil
}

// applicableRate filters to active rates whose window intersects [from, to]
// and breaks ties by latest StartDate: the most recently defined season wins
// over a broader one it overlaps.
func applicableRate(rates []SeasonalRate, from, to time.Time) (SeasonalRate, bool) {
	var best SeasonalRate
	found := false
	for _, sr := range rates {
		if !sr.IsActive {
			continue
		}
		if sr.EndDate.Before(from) || sr.StartDate.After(to) {
			continue
		}
		if !found || sr.StartDate.After(best.StartDate) {
			best = sr
			found = true
		}
	}
	return best, found
}
