package handlers

import (
	"net/http"

	"github.com/smartsplit/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
)

// DraftHandler handles explicit draft persistence requests. Autosave runs
// separately in the background; these endpoints are the manual controls.
type DraftHandler struct {
	*Base
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(svc *service.BillService) *DraftHandler {
	return &DraftHandler{Base: NewBase(svc)}
}

// Save handles POST /api/draft/save - persists the live bill.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SaveDraft(); err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "draft saved"})
}

// Load handles POST /api/draft/load - replaces the live bill with the
// saved draft.
func (h *DraftHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.LoadDraft(); err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.BillStateResponse{
		Bill:    h.svc.State(),
		Summary: dto.NewSummaryResponse(h.svc.Summary(), h.svc.PerPersonAverage()),
	})
}

// Clear handles DELETE /api/draft - removes the saved draft.
func (h *DraftHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearDraft(); err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "draft cleared"})
}
