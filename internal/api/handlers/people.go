package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartsplit/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
	"github.com/smartsplit/smartsplit-backend/internal/domain/engine"
)

// PeopleHandler handles participant-related HTTP requests.
type PeopleHandler struct {
	*Base
}

// NewPeopleHandler creates a new people handler.
func NewPeopleHandler(svc *service.BillService) *PeopleHandler {
	return &PeopleHandler{Base: NewBase(svc)}
}

// Create handles POST /api/people - adds a participant.
func (h *PeopleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PersonRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	person, err := h.svc.AddPerson(req.Name)
	if err != nil {
		h.WriteMappedError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, dto.PersonResponse{ID: string(person.ID), Name: person.Name})
}

// Delete handles DELETE /api/people/{id} - removes a participant and their
// item assignments.
func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Person(engine.PersonID(id)); !ok {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("person"))
		return
	}

	h.svc.RemovePerson(engine.PersonID(id))
	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "person removed"})
}
