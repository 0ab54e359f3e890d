// Package engine implements the bill allocation core: items, people, the
// per-item assignment table, and the arithmetic that turns them into a
// per-person breakdown.
//
// The engine is a plain in-memory value with validated mutators and pure
// derived queries. It performs no I/O and no locking; callers embedding it
// in a concurrent context must serialize access themselves.
package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PercentageTolerance is how far a percentage split's total may drift from
// 100 before it is rejected.
const PercentageTolerance = 0.1

// Engine owns a single bill: its config amounts, items, people, and the
// assignment table mapping each item to each assigned person's share.
type Engine struct {
	subtotal   float64
	tax        float64
	serviceFee float64
	tip        Tip

	items       []Item
	people      []Person
	assignments map[ItemID]map[PersonID]Share

	newID func() string
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		assignments: make(map[ItemID]map[PersonID]Share),
		newID:       uuid.NewString,
	}
}

// SetBillField sets subtotal, tax, or the service fee. Negative values are
// clamped to zero rather than rejected. Setting the subtotal does not touch
// the tip amount directly, but a percentage-mode tip will resolve against
// the new subtotal on the next read.
func (e *Engine) SetBillField(field BillField, value float64) error {
	if value < 0 {
		value = 0
	}
	switch field {
	case FieldSubtotal:
		e.subtotal = value
	case FieldTax:
		e.tax = value
	case FieldServiceFee:
		e.serviceFee = value
	default:
		return fmt.Errorf("unknown bill field %q", field)
	}
	return nil
}

// SetTipPercentage switches the tip to percentage mode. The dollar amount
// is derived from the subtotal on every read.
func (e *Engine) SetTipPercentage(pct float64) {
	e.tip = TipPercent(pct)
}

// SetTipAmount switches the tip to a fixed amount, clearing any previously
// chosen percentage.
func (e *Engine) SetTipAmount(amount float64) {
	e.tip = TipAmount(amount)
}

// Subtotal returns the bill subtotal.
func (e *Engine) Subtotal() float64 { return e.subtotal }

// Tax returns the bill tax amount.
func (e *Engine) Tax() float64 { return e.tax }

// ServiceFee returns the bill service fee.
func (e *Engine) ServiceFee() float64 { return e.serviceFee }

// Tip returns the resolved tip amount.
func (e *Engine) Tip() float64 {
	return e.tip.Resolve(e.subtotal)
}

// TipPercentage reports the tip percentage and whether the tip is in
// percentage mode.
func (e *Engine) TipPercentage() (float64, bool) {
	return e.tip.Percentage()
}

// DeriveSubtotalFromItems sets the subtotal to the sum of all item line
// totals. With no items it changes nothing and returns ErrEmptyItemList so
// the caller can surface a message.
func (e *Engine) DeriveSubtotalFromItems() error {
	if len(e.items) == 0 {
		return validationErr(ErrEmptyItemList, "add some items first before deriving the subtotal")
	}
	e.subtotal = e.ItemsTotal()
	return nil
}

// ItemDraft is the input to SaveItem. An empty ID creates a new item; a
// non-empty ID upserts. Percentages is consulted only when SplitMethod is
// SplitPercentage; people missing from it default to 0.
type ItemDraft struct {
	ID             ItemID
	Name           string
	UnitPrice      float64
	Quantity       int
	SplitMethod    SplitMethod
	AssignedPeople []PersonID
	Percentages    map[PersonID]float64
}

// SaveItem validates and upserts an item, rewriting its assignment entry
// from scratch. Validation order is fixed and the first failure wins: name,
// then price, then assignment, then percentage sum. On success the
// finalized item is returned.
func (e *Engine) SaveItem(draft ItemDraft) (Item, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return Item{}, validationErr(ErrInvalidName, "item name is required")
	}
	if draft.UnitPrice <= 0 {
		return Item{}, validationErr(ErrInvalidPrice, "item price must be greater than zero")
	}

	assigned := dedupe(draft.AssignedPeople)
	if len(assigned) == 0 {
		return Item{}, validationErr(ErrInvalidAssignment, "at least one person must be assigned to the item")
	}
	for _, pid := range assigned {
		if _, ok := e.Person(pid); !ok {
			return Item{}, validationErr(ErrInvalidAssignment, fmt.Sprintf("unknown person id %q", pid))
		}
	}

	method := draft.SplitMethod
	if method != SplitPercentage {
		method = SplitEven
	}

	shares := make(map[PersonID]Share, len(assigned))
	switch method {
	case SplitEven:
		per := 100 / float64(len(assigned))
		for _, pid := range assigned {
			shares[pid] = Share{Percentage: per}
		}
	case SplitPercentage:
		var sum float64
		for _, pid := range assigned {
			pct := draft.Percentages[pid]
			shares[pid] = Share{Percentage: pct}
			sum += pct
		}
		if diff := sum - 100; diff > PercentageTolerance || diff < -PercentageTolerance {
			return Item{}, &ValidationError{
				Kind:      ErrPercentageMismatch,
				Message:   fmt.Sprintf("split percentages must total 100%%, got %.1f%%", sum),
				ActualSum: sum,
			}
		}
	}

	quantity := draft.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := Item{
		ID:             draft.ID,
		Name:           name,
		UnitPrice:      draft.UnitPrice,
		Quantity:       quantity,
		SplitMethod:    method,
		AssignedPeople: assigned,
	}
	if item.ID == "" {
		item.ID = ItemID(e.newID())
	}

	if idx := e.itemIndex(item.ID); idx >= 0 {
		e.items[idx] = item
	} else {
		e.items = append(e.items, item)
	}
	e.assignments[item.ID] = shares

	return item, nil
}

// RemoveItem deletes an item and its assignment entry. Removing an unknown
// id is a no-op.
func (e *Engine) RemoveItem(id ItemID) {
	if idx := e.itemIndex(id); idx >= 0 {
		e.items = append(e.items[:idx], e.items[idx+1:]...)
	}
	delete(e.assignments, id)
}

// AddPerson creates a participant. People keep insertion order, which is
// significant for display and export.
func (e *Engine) AddPerson(name string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, validationErr(ErrInvalidName, "person name is required")
	}
	p := Person{ID: PersonID(e.newID()), Name: name}
	e.people = append(e.people, p)
	return p, nil
}

// RemovePerson deletes a participant and strips them from every item's
// assignment. Items left with nobody assigned are kept: they no longer
// contribute to any person's total but still count toward the items total
// used for subtotal derivation and apportionment. Surviving percentage
// splits are not renormalized; the caller must re-edit the item.
func (e *Engine) RemovePerson(id PersonID) {
	for i, p := range e.people {
		if p.ID == id {
			e.people = append(e.people[:i], e.people[i+1:]...)
			break
		}
	}
	for i := range e.items {
		e.items[i].AssignedPeople = removePersonID(e.items[i].AssignedPeople, id)
	}
	for _, shares := range e.assignments {
		delete(shares, id)
	}
}

// Items returns the items in insertion order.
func (e *Engine) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// People returns the participants in insertion order.
func (e *Engine) People() []Person {
	out := make([]Person, len(e.people))
	copy(out, e.people)
	return out
}

// Item looks up an item by id.
func (e *Engine) Item(id ItemID) (Item, bool) {
	if idx := e.itemIndex(id); idx >= 0 {
		return e.items[idx], true
	}
	return Item{}, false
}

// Person looks up a participant by id.
func (e *Engine) Person(id PersonID) (Person, bool) {
	for _, p := range e.people {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Shares returns a copy of an item's assignment entry.
func (e *Engine) Shares(id ItemID) map[PersonID]Share {
	shares := e.assignments[id]
	out := make(map[PersonID]Share, len(shares))
	for pid, s := range shares {
		out[pid] = s
	}
	return out
}

func (e *Engine) itemIndex(id ItemID) int {
	for i, it := range e.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []PersonID) []PersonID {
	seen := make(map[PersonID]bool, len(ids))
	out := make([]PersonID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func removePersonID(ids []PersonID, id PersonID) []PersonID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
