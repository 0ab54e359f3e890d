package handlers

import (
	"net/http"

	"github.com/smartsplit/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
)

// ResultsHandler serves the computed per-person results and export.
type ResultsHandler struct {
	*Base
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(svc *service.BillService) *ResultsHandler {
	return &ResultsHandler{Base: NewBase(svc)}
}

// Get handles GET /api/results - the rounded per-person breakdown.
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, dto.NewResultsResponse(h.svc.Breakdown()))
}

// Export handles GET /api/export - the shareable bill document.
func (h *ResultsHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.svc.Export())
}
