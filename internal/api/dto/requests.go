package dto

import "github.com/smartsplit/smartsplit-backend/internal/domain/engine"

// BillFieldsRequest updates the directly settable bill amounts. Nil fields
// are left unchanged.
type BillFieldsRequest struct {
	Subtotal   *float64 `json:"subtotal"`
	Tax        *float64 `json:"tax"`
	ServiceFee *float64 `json:"serviceFee"`
}

// TipRequest sets the tip. Exactly one of Percentage or Amount must be
// given; Percentage wins when both are present.
type TipRequest struct {
	Percentage *float64 `json:"percentage"`
	Amount     *float64 `json:"amount"`
}

// ItemRequest creates or updates an item.
type ItemRequest struct {
	Name           string             `json:"name"`
	UnitPrice      float64            `json:"unitPrice"`
	Quantity       int                `json:"quantity"`
	SplitMethod    string             `json:"splitMethod"`
	AssignedPeople []string           `json:"assignedPeople"`
	Percentages    map[string]float64 `json:"percentages"`
}

// ToDraft converts the request into an engine item draft.
func (r ItemRequest) ToDraft(id string) engine.ItemDraft {
	draft := engine.ItemDraft{
		ID:          engine.ItemID(id),
		Name:        r.Name,
		UnitPrice:   r.UnitPrice,
		Quantity:    r.Quantity,
		SplitMethod: engine.SplitMethod(r.SplitMethod),
	}
	for _, p := range r.AssignedPeople {
		draft.AssignedPeople = append(draft.AssignedPeople, engine.PersonID(p))
	}
	if len(r.Percentages) > 0 {
		draft.Percentages = make(map[engine.PersonID]float64, len(r.Percentages))
		for p, pct := range r.Percentages {
			draft.Percentages[engine.PersonID(p)] = pct
		}
	}
	return draft
}

// PersonRequest adds a participant.
type PersonRequest struct {
	Name string `json:"name"`
}
