package engine

import "time"

// Snapshot is the serialized form of an engine's full state. It is the only
// wire format the engine speaks: callers persist it, restore it, and ship
// it over HTTP. Field names are fixed for compatibility with stored
// history.
type Snapshot struct {
	BillConfig  SnapshotBill                  `json:"billConfig"`
	Items       []SnapshotItem                `json:"items"`
	People      []SnapshotPerson              `json:"people"`
	Assignments map[ItemID]map[PersonID]Share `json:"assignments"`
	Timestamp   string                        `json:"timestamp"`
	Complete    bool                          `json:"complete"`
	Title       string                        `json:"title,omitempty"`
}

// SnapshotBill carries the bill amounts. Tip is the resolved dollar value;
// TipPercentage, when non-nil, records that the tip is percentage-based.
type SnapshotBill struct {
	Subtotal      float64  `json:"subtotal"`
	Tax           float64  `json:"tax"`
	Tip           float64  `json:"tip"`
	ServiceFee    float64  `json:"serviceFee"`
	TipPercentage *float64 `json:"tipPercentage"`
}

// SnapshotItem is an item in serialized form.
type SnapshotItem struct {
	ID             ItemID      `json:"id"`
	Name           string      `json:"name"`
	UnitPrice      float64     `json:"unitPrice"`
	Quantity       int         `json:"quantity"`
	LineTotal      float64     `json:"lineTotal"`
	SplitMethod    SplitMethod `json:"splitMethod"`
	AssignedPeople []PersonID  `json:"assignedPeople"`
}

// SnapshotPerson is a participant in serialized form.
type SnapshotPerson struct {
	ID   PersonID `json:"id"`
	Name string   `json:"name"`
}

// Snapshot captures the engine's current state. The caller stamps the
// moment; Complete and Title stay zero here and are set by whoever
// finalizes a bill.
func (e *Engine) Snapshot(at time.Time) Snapshot {
	snap := Snapshot{
		BillConfig: SnapshotBill{
			Subtotal:   e.subtotal,
			Tax:        e.tax,
			Tip:        e.Tip(),
			ServiceFee: e.serviceFee,
		},
		Items:       make([]SnapshotItem, 0, len(e.items)),
		People:      make([]SnapshotPerson, 0, len(e.people)),
		Assignments: make(map[ItemID]map[PersonID]Share, len(e.assignments)),
		Timestamp:   at.UTC().Format(time.RFC3339),
	}

	if pct, ok := e.tip.Percentage(); ok {
		snap.BillConfig.TipPercentage = &pct
	}

	for _, it := range e.items {
		assigned := make([]PersonID, len(it.AssignedPeople))
		copy(assigned, it.AssignedPeople)
		snap.Items = append(snap.Items, SnapshotItem{
			ID:             it.ID,
			Name:           it.Name,
			UnitPrice:      it.UnitPrice,
			Quantity:       it.Quantity,
			LineTotal:      it.LineTotal(),
			SplitMethod:    it.SplitMethod,
			AssignedPeople: assigned,
		})
	}

	for _, p := range e.people {
		snap.People = append(snap.People, SnapshotPerson{ID: p.ID, Name: p.Name})
	}

	for itemID, shares := range e.assignments {
		entry := make(map[PersonID]Share, len(shares))
		for pid, s := range shares {
			entry[pid] = s
		}
		snap.Assignments[itemID] = entry
	}

	return snap
}

// Restore overwrites the engine's state wholesale from a snapshot. A
// percentage-based tip is restored in percentage mode so it keeps tracking
// the subtotal.
func (e *Engine) Restore(snap Snapshot) {
	e.subtotal = snap.BillConfig.Subtotal
	e.tax = snap.BillConfig.Tax
	e.serviceFee = snap.BillConfig.ServiceFee
	if snap.BillConfig.TipPercentage != nil {
		e.tip = TipPercent(*snap.BillConfig.TipPercentage)
	} else {
		e.tip = TipAmount(snap.BillConfig.Tip)
	}

	e.items = make([]Item, 0, len(snap.Items))
	for _, it := range snap.Items {
		assigned := make([]PersonID, len(it.AssignedPeople))
		copy(assigned, it.AssignedPeople)
		quantity := it.Quantity
		if quantity < 1 {
			quantity = 1
		}
		e.items = append(e.items, Item{
			ID:             it.ID,
			Name:           it.Name,
			UnitPrice:      it.UnitPrice,
			Quantity:       quantity,
			SplitMethod:    it.SplitMethod,
			AssignedPeople: assigned,
		})
	}

	e.people = make([]Person, 0, len(snap.People))
	for _, p := range snap.People {
		e.people = append(e.people, Person{ID: p.ID, Name: p.Name})
	}

	e.assignments = make(map[ItemID]map[PersonID]Share, len(snap.Assignments))
	for itemID, shares := range snap.Assignments {
		entry := make(map[PersonID]Share, len(shares))
		for pid, s := range shares {
			entry[pid] = s
		}
		e.assignments[itemID] = entry
	}
}

// Reset returns the engine to its empty state.
func (e *Engine) Reset() {
	e.subtotal = 0
	e.tax = 0
	e.serviceFee = 0
	e.tip = Tip{}
	e.items = nil
	e.people = nil
	e.assignments = make(map[ItemID]map[PersonID]Share)
}

// HasData reports whether anything has been entered yet: any bill amount,
// item, or person.
func (e *Engine) HasData() bool {
	return e.subtotal > 0 || e.tax > 0 || e.Tip() > 0 || e.serviceFee > 0 ||
		len(e.items) > 0 || len(e.people) > 0
}
