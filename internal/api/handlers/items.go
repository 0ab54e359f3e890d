package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartsplit/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
)

// ItemsHandler handles item-related HTTP requests.
type ItemsHandler struct {
	*Base
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(svc *service.BillService) *ItemsHandler {
	return &ItemsHandler{Base: NewBase(svc)}
}

// Create handles POST /api/items - adds an item to the live bill.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ItemRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.svc.SaveItem(req.ToDraft(""))
	if err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, dto.NewItemResponse(item))
}

// Update handles PUT /api/items/{id} - replaces an existing item.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Item(engine.ItemID(id)); !ok {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("item"))
		return
	}

	var req dto.ItemRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.svc.SaveItem(req.ToDraft(id))
	if err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dto.NewItemResponse(item))
}

// Delete handles DELETE /api/items/{id} - removes an item.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Item(engine.ItemID(id)); !ok {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("item"))
		return
	}

	h.svc.RemoveItem(engine.ItemID(id))
	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "item removed"})
}
