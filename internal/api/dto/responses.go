package dto

import (
	"time"

	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
	"github.com/smartsplit/smartsplit-backend/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// SummaryResponse carries the bill-level totals.
type SummaryResponse struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Tip        float64 `json:"tip"`
	ServiceFee float64 `json:"serviceFee"`
	GrandTotal float64 `json:"grandTotal"`
	PerPerson  float64 `json:"perPersonAverage"`
}

// BillStateResponse is the full live bill: its snapshot plus totals.
type BillStateResponse struct {
	Bill    engine.Snapshot `json:"bill"`
	Summary SummaryResponse `json:"summary"`
}

// PersonResultResponse is one person's rounded share.
type PersonResultResponse struct {
	PersonID   string               `json:"personId"`
	Name       string               `json:"name"`
	Items      []ResultItemResponse `json:"items"`
	Subtotal   float64              `json:"subtotal"`
	Tax        float64              `json:"tax"`
	Tip        float64              `json:"tip"`
	ServiceFee float64              `json:"serviceFee"`
	GrandTotal float64              `json:"grandTotal"`
}

// ResultItemResponse is one item line within a person's share.
type ResultItemResponse struct {
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// ResultsResponse is returned by the per-person results endpoint.
type ResultsResponse struct {
	Results []PersonResultResponse `json:"results"`
}

// ItemResponse represents an item in API responses.
type ItemResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	UnitPrice      float64  `json:"unitPrice"`
	Quantity       int      `json:"quantity"`
	LineTotal      float64  `json:"lineTotal"`
	SplitMethod    string   `json:"splitMethod"`
	AssignedPeople []string `json:"assignedPeople"`
}

// PersonResponse represents a participant in API responses.
type PersonResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HistoryEntryResponse is one completed bill in the history list. The full
// snapshot is only returned when fetching a single bill.
type HistoryEntryResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	PeopleCount int     `json:"peopleCount"`
	ItemCount   int     `json:"itemCount"`
	GrandTotal  float64 `json:"grandTotal"`
	CreatedAt   string  `json:"createdAt"`
}

// HistoryListResponse is returned when listing completed bills.
type HistoryListResponse struct {
	Bills []HistoryEntryResponse `json:"bills"`
	Count int                    `json:"count"`
}

// CompletedBillResponse is a single completed bill with its snapshot.
type CompletedBillResponse struct {
	HistoryEntryResponse
	Snapshot engine.Snapshot `json:"snapshot"`
}

// MessageResponse acknowledges an operation with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewSummaryResponse builds a SummaryResponse from engine totals.
func NewSummaryResponse(summary engine.BillSummary, perPerson float64) SummaryResponse {
	return SummaryResponse{
		Subtotal:   summary.Subtotal,
		Tax:        summary.Tax,
		Tip:        summary.Tip,
		ServiceFee: summary.ServiceFee,
		GrandTotal: summary.GrandTotal,
		PerPerson:  perPerson,
	}
}

// NewItemResponse converts an engine item.
func NewItemResponse(item engine.Item) ItemResponse {
	assigned := make([]string, 0, len(item.AssignedPeople))
	for _, p := range item.AssignedPeople {
		assigned = append(assigned, string(p))
	}
	return ItemResponse{
		ID:             string(item.ID),
		Name:           item.Name,
		UnitPrice:      item.UnitPrice,
		Quantity:       item.Quantity,
		LineTotal:      item.LineTotal(),
		SplitMethod:    string(item.SplitMethod),
		AssignedPeople: assigned,
	}
}

// NewResultsResponse converts the per-person breakdown.
func NewResultsResponse(breakdown []engine.PersonBreakdown) ResultsResponse {
	resp := ResultsResponse{Results: make([]PersonResultResponse, 0, len(breakdown))}
	for _, pb := range breakdown {
		person := PersonResultResponse{
			PersonID:   string(pb.PersonID),
			Name:       pb.Name,
			Items:      make([]ResultItemResponse, 0, len(pb.Items)),
			Subtotal:   pb.Subtotal,
			Tax:        pb.Tax,
			Tip:        pb.Tip,
			ServiceFee: pb.ServiceFee,
			GrandTotal: pb.GrandTotal,
		}
		for _, line := range pb.Items {
			person.Items = append(person.Items, ResultItemResponse{
				ItemID:     string(line.ItemID),
				Name:       line.Name,
				Percentage: line.Percentage,
				Amount:     line.Amount,
			})
		}
		resp.Results = append(resp.Results, person)
	}
	return resp
}

// NewHistoryEntryResponse converts a stored bill's list row.
func NewHistoryEntryResponse(bill *storage.CompletedBill) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:          bill.ID,
		Title:       bill.Title,
		PeopleCount: bill.PeopleCount,
		ItemCount:   bill.ItemCount,
		GrandTotal:  bill.GrandTotal,
		CreatedAt:   bill.CreatedAt.UTC().Format(time.RFC3339),
	}
}
