package pricing

import (
	"context"
	"fmt"
	"sync"
)

// BulkItem is one entry of a bulk pricing request.
type BulkItem struct {
	Kind    ItemKind
	ID      string
	Context PricingContext
}

// BulkItemResult captures one item's outcome. Exactly one of Breakdown or Err
// is set.
type BulkItemResult struct {
	Kind      ItemKind   `json:"item_kind"`
	ID        string     `json:"item_id"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`
	Err       error      `json:"-"`
}

func (r BulkItemResult) Success() bool { return r.Err == nil }

// BulkResult is the ordered per-item outcome list plus the aggregate, which
// is present only when every item priced successfully. The discount
// percentage is captured at calculation time so a later tier change never
// retroactively alters an issued quote.
type BulkResult struct {
	Items []BulkItemResult `json:"items"`

	AgentTier       Tier   `json:"agent_tier"`
	DiscountPercent int64  `json:"discount_percent"`
	Subtotal        Money  `json:"subtotal"`
	AgentDiscount   Money  `json:"agent_discount"`
	Total           *Money `json:"total,omitempty"`
}

// AllSucceeded reports whether every entry priced without error.
func (b BulkResult) AllSucceeded() bool {
	for _, it := range b.Items {
		if !it.Success() {
			return false
		}
	}
	return true
}

const defaultBulkWorkers = 4

// Aggregator drives the calculator over a list of items with best-effort
// semantics: a single item failure never aborts the batch, and results come
// back in input order regardless of completion order.
type Aggregator struct {
	Calculator Calculator
	Agents     AgentSource
	Discounts  DiscountTable // DefaultTierDiscounts when nil
	Workers    int
}

func (a Aggregator) discounts() DiscountTable {
	if a.Discounts != nil {
		return a.Discounts
	}
	if a.Calculator.Discounts != nil {
		return a.Calculator.Discounts
	}
	return DefaultTierDiscounts
}

// Calculate prices every item independently, then aggregates. The tier
// override wins; otherwise the agent's own tier is looked up once, up front.
// Cancellation stops issuing new per-item work but already computed entries
// are still returned, marked against the context error where skipped.
func (a Aggregator) Calculate(ctx context.Context, agentID string, tierOverride Tier, items []BulkItem) (BulkResult, error) {
	tier := tierOverride
	if tier == "" {
		if a.Agents == nil {
			return BulkResult{}, fmt.Errorf("no agent source configured and no tier override given")
		}
		var err error
		tier, err = a.Agents.TierOf(agentID)
		if err != nil {
			return BulkResult{}, err
		}
	}

	out := BulkResult{
		AgentTier:       tier,
		DiscountPercent: a.discounts().Percent(tier),
		Items:           make([]BulkItemResult, len(items)),
	}

	workers := a.Workers
	if workers <= 0 {
		workers = defaultBulkWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	type job struct {
		idx  int
		item BulkItem
	}
	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				bd, err := a.Calculator.PriceItem(j.item.Kind, j.item.ID, j.item.Context)
				res := BulkItemResult{Kind: j.item.Kind, ID: j.item.ID}
				if err != nil {
					res.Err = err
				} else {
					res.Breakdown = &bd
				}
				out.Items[j.idx] = res
			}
		}()
	}

feed:
	for i, item := range items {
		select {
		case <-ctx.Done():
			// stop issuing work; mark the rest against the context error
			for k := i; k < len(items); k++ {
				out.Items[k] = BulkItemResult{Kind: items[k].Kind, ID: items[k].ID, Err: ctx.Err()}
			}
			break feed
		case jobs <- job{idx: i, item: item}:
		}
	}
	close(jobs)
	wg.Wait()

	if !out.AllSucceeded() {
		return out, nil
	}

	var subtotal Money
	for _, it := range out.Items {
		sum, err := subtotal.Add(it.Breakdown.FinalPrice)
		if err != nil {
			// mixed currencies in one quote is a defect of the request itself
			return out, fmt.Errorf("aggregate total: %w", err)
		}
		subtotal = sum
	}
	if subtotal.Currency == "" {
		subtotal.Currency = DefaultCurrency
	}

	bp := a.discounts().BasisPoints(tier)
	if bp < 0 || bp > bpScale {
		bp = 0
	}
	scaled, err := checkedMul(subtotal.Amount, bp)
	if err != nil {
		return out, err
	}
	discount := roundHalfUpDiv(scaled, bpScale)

	out.Subtotal = subtotal
	out.AgentDiscount = NewMoney(discount, subtotal.Currency)
	total := NewMoney(subtotal.Amount-discount, subtotal.Currency)
	out.Total = &total
	return out, nil
}
