package handlers

import (
	"net/http"

	"github.com/smartsplit/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
)

// BillHandler handles bill-level HTTP requests: amounts, tip, completion.
type BillHandler struct {
	*Base
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(svc *service.BillService) *BillHandler {
	return &BillHandler{Base: NewBase(svc)}
}

// Get handles GET /api/bill - returns the live bill state and totals.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := dto.BillStateResponse{
		Bill:    h.svc.State(),
		Summary: dto.NewSummaryResponse(h.svc.Summary(), h.svc.PerPersonAverage()),
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// UpdateFields handles PUT /api/bill - updates subtotal, tax, service fee.
// Omitted fields are left alone.
func (h *BillHandler) UpdateFields(w http.ResponseWriter, r *http.Request) {
	var req dto.BillFieldsRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if req.Subtotal != nil {
		if err := h.svc.SetBillField(engine.FieldSubtotal, *req.Subtotal); err != nil {
			h.WriteMappedError(w, err)
			return
		}
	}
	if req.Tax != nil {
		if err := h.svc.SetBillField(engine.FieldTax, *req.Tax); err != nil {
			h.WriteMappedError(w, err)
			return
		}
	}
	if req.ServiceFee != nil {
		if err := h.svc.SetBillField(engine.FieldServiceFee, *req.ServiceFee); err != nil {
			h.WriteMappedError(w, err)
			return
		}
	}

	h.WriteJSON(w, http.StatusOK, dto.NewSummaryResponse(h.svc.Summary(), h.svc.PerPersonAverage()))
}

// SetTip handles PUT /api/bill/tip - switches between percentage and fixed
// tip modes.
func (h *BillHandler) SetTip(w http.ResponseWriter, r *http.Request) {
	var req dto.TipRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	switch {
	case req.Percentage != nil:
		h.svc.SetTipPercentage(*req.Percentage)
	case req.Amount != nil:
		h.svc.SetTipAmount(*req.Amount)
	default:
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("either percentage or amount is required"))
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.NewSummaryResponse(h.svc.Summary(), h.svc.PerPersonAverage()))
}

// DeriveSubtotal handles POST /api/bill/subtotal/derive - replaces the
// subtotal with the sum of item line totals.
func (h *BillHandler) DeriveSubtotal(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeriveSubtotalFromItems(); err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.NewSummaryResponse(h.svc.Summary(), h.svc.PerPersonAverage()))
}

// Complete handles POST /api/bill/complete - finalizes the live bill into
// history and clears it.
func (h *BillHandler) Complete(w http.ResponseWriter, r *http.Request) {
	bill, err := h.svc.Complete()
	if err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, dto.NewHistoryEntryResponse(bill))
}

// Reset handles POST /api/bill/reset - discards the live bill.
func (h *BillHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.svc.Reset()
	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "bill reset"})
}
