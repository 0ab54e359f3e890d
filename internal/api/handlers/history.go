package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartsplit/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
)

// HistoryHandler handles completed-bill HTTP requests.
type HistoryHandler struct {
	*Base
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc *service.BillService) *HistoryHandler {
	return &HistoryHandler{Base: NewBase(svc)}
}

// List handles GET /api/history - completed bills, newest first. An
// optional limit query parameter truncates the list.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.History()
	if err != nil {
		h.WriteMappedError(w, err)
		return
	}

	if limit := ParseIntParam(r, "limit", 0); limit > 0 && limit < len(bills) {
		bills = bills[:limit]
	}

	resp := dto.HistoryListResponse{
		Bills: make([]dto.HistoryEntryResponse, 0, len(bills)),
		Count: len(bills),
	}
	for _, bill := range bills {
		resp.Bills = append(resp.Bills, dto.NewHistoryEntryResponse(bill))
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/history/{id} - one bill with its full snapshot.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	bill, err := h.svc.HistoryBill(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.CompletedBillResponse{
		HistoryEntryResponse: dto.NewHistoryEntryResponse(bill),
		Snapshot:             bill.Snapshot,
	})
}

// Load handles POST /api/history/{id}/load - reopens a completed bill as
// the editable live bill.
func (h *HistoryHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.LoadFromHistory(chi.URLParam(r, "id")); err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.BillStateResponse{
		Bill:    h.svc.State(),
		Summary: dto.NewSummaryResponse(h.svc.Summary(), h.svc.PerPersonAverage()),
	})
}

// Delete handles DELETE /api/history/{id} - removes one completed bill.
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFromHistory(chi.URLParam(r, "id")); err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "bill deleted"})
}

// Clear handles DELETE /api/history - removes every completed bill.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearHistory(); err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "history cleared"})
}
