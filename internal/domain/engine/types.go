package engine

// ItemID identifies a bill item. Item and person ids are distinct types so
// they cannot be swapped accidentally in the assignment table.
type ItemID string

// PersonID identifies a participant.
type PersonID string

// SplitMethod describes how an item's cost is divided among its assigned
// people.
type SplitMethod string

const (
	// SplitEven divides the item equally among everyone assigned to it.
	SplitEven SplitMethod = "even"

	// SplitPercentage divides the item by caller-supplied percentages that
	// must total 100.
	SplitPercentage SplitMethod = "percentage"
)

// Item is a single purchased line on the bill.
type Item struct {
	ID          ItemID
	Name        string
	UnitPrice   float64
	Quantity    int
	SplitMethod SplitMethod

	// AssignedPeople is kept in the order people were assigned; it always
	// matches the keys of the item's assignment entry exactly.
	AssignedPeople []PersonID
}

// LineTotal is the item's full cost: unit price times quantity.
func (it Item) LineTotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}

// Person is a participant in the split. Identity is the id, not the name;
// duplicate names are allowed.
type Person struct {
	ID   PersonID
	Name string
}

// Share is one person's slice of one item.
type Share struct {
	Percentage float64
}

// Tip carries the bill's tip in one of two modes: a fixed dollar amount, or
// a percentage of the subtotal. Percentage mode resolves against the current
// subtotal at read time, so the amount tracks later subtotal edits instead
// of freezing at the value computed when the percentage was chosen.
type Tip struct {
	amount     float64
	percentage *float64
}

// TipAmount returns a fixed-amount tip.
func TipAmount(amount float64) Tip {
	if amount < 0 {
		amount = 0
	}
	return Tip{amount: amount}
}

// TipPercent returns a percentage-based tip.
func TipPercent(pct float64) Tip {
	if pct < 0 {
		pct = 0
	}
	return Tip{percentage: &pct}
}

// Resolve returns the tip as a dollar amount given the current subtotal.
func (t Tip) Resolve(subtotal float64) float64 {
	if t.percentage != nil {
		return subtotal * *t.percentage / 100
	}
	return t.amount
}

// Percentage reports the tip percentage and whether the tip is in
// percentage mode.
func (t Tip) Percentage() (float64, bool) {
	if t.percentage == nil {
		return 0, false
	}
	return *t.percentage, true
}

// BillField names one of the directly settable bill amounts.
type BillField string

const (
	FieldSubtotal   BillField = "subtotal"
	FieldTax        BillField = "tax"
	FieldServiceFee BillField = "serviceFee"
)
