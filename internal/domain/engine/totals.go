package engine

import "math"

// BillSummary is the bill-level rollup.
type BillSummary struct {
	Subtotal   float64
	Tax        float64
	Tip        float64
	ServiceFee float64
	GrandTotal float64
}

// BreakdownItem is one item line in a person's breakdown.
type BreakdownItem struct {
	ItemID     ItemID
	Name       string
	Percentage float64
	Amount     float64
}

// PersonBreakdown is everything one person owes, itemized.
type PersonBreakdown struct {
	PersonID   PersonID
	Name       string
	Items      []BreakdownItem
	Subtotal   float64
	Tax        float64
	Tip        float64
	ServiceFee float64
	GrandTotal float64
}

// personLine is the raw (unrounded) share of one item for one person.
type personLine struct {
	item       Item
	percentage float64
	amount     float64
}

// personFigures computes the raw item lines and item subtotal for one
// person. PersonTotal and DetailedBreakdown both build on it so the two can
// never diverge.
func (e *Engine) personFigures(id PersonID) ([]personLine, float64) {
	var lines []personLine
	var subtotal float64
	for _, it := range e.items {
		shares, ok := e.assignments[it.ID]
		if !ok {
			continue
		}
		share, ok := shares[id]
		if !ok {
			continue
		}
		amount := it.LineTotal() * share.Percentage / 100
		lines = append(lines, personLine{item: it, percentage: share.Percentage, amount: amount})
		subtotal += amount
	}
	return lines, subtotal
}

// ItemsTotal is the sum of every item's line total, orphaned items
// included. Tax, tip, and the service fee are apportioned against this
// figure: a person pays extras in proportion to their share of everything
// billed, whether or not every item ended up assigned.
func (e *Engine) ItemsTotal() float64 {
	var total float64
	for _, it := range e.items {
		total += it.LineTotal()
	}
	return total
}

// PersonTotal is the amount one person owes: their item subtotal plus a
// proportional share of tax, tip, and service fee. With an empty bill the
// ratio is zero and the person owes exactly their (zero) item subtotal.
func (e *Engine) PersonTotal(id PersonID) float64 {
	_, subtotal := e.personFigures(id)
	itemsTotal := e.ItemsTotal()
	if itemsTotal == 0 {
		return subtotal
	}
	ratio := subtotal / itemsTotal
	return subtotal + ratio*(e.tax+e.Tip()+e.serviceFee)
}

// Summary returns the bill-level totals.
func (e *Engine) Summary() BillSummary {
	tip := e.Tip()
	return BillSummary{
		Subtotal:   e.subtotal,
		Tax:        e.tax,
		Tip:        tip,
		ServiceFee: e.serviceFee,
		GrandTotal: e.subtotal + e.tax + tip + e.serviceFee,
	}
}

// PerPersonAverage is the grand total divided evenly across all people, or
// 0 when nobody has been added yet.
func (e *Engine) PerPersonAverage() float64 {
	if len(e.people) == 0 {
		return 0
	}
	return e.Summary().GrandTotal / float64(len(e.people))
}

// DetailedBreakdown returns each person's itemized share in people order.
// Money is rounded to cents and percentages to a tenth for display; the
// underlying figures come from the same computation as PersonTotal.
func (e *Engine) DetailedBreakdown() []PersonBreakdown {
	itemsTotal := e.ItemsTotal()
	out := make([]PersonBreakdown, 0, len(e.people))
	for _, p := range e.people {
		lines, subtotal := e.personFigures(p.ID)

		var ratio float64
		if itemsTotal > 0 {
			ratio = subtotal / itemsTotal
		}

		pb := PersonBreakdown{
			PersonID:   p.ID,
			Name:       p.Name,
			Items:      make([]BreakdownItem, 0, len(lines)),
			Subtotal:   roundToCents(subtotal),
			Tax:        roundToCents(e.tax * ratio),
			Tip:        roundToCents(e.Tip() * ratio),
			ServiceFee: roundToCents(e.serviceFee * ratio),
			GrandTotal: roundToCents(e.PersonTotal(p.ID)),
		}
		for _, line := range lines {
			pb.Items = append(pb.Items, BreakdownItem{
				ItemID:     line.item.ID,
				Name:       line.item.Name,
				Percentage: roundToTenth(line.percentage),
				Amount:     roundToCents(line.amount),
			})
		}
		out = append(out, pb)
	}
	return out
}

// roundToCents rounds money to 2 decimal places.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// roundToTenth rounds a percentage to 1 decimal place.
func roundToTenth(pct float64) float64 {
	return math.Round(pct*10) / 10
}
