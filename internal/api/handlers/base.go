package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/smartsplit/smartsplit-backend/internal/api/dto"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
)

// Base provides shared functionality for all handlers.
type Base struct {
	svc *service.BillService
}

// NewBase creates a new base handler around the bill service.
func NewBase(svc *service.BillService) *Base {
	return &Base{svc: svc}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	b.WriteJSON(w, status, err)
}

// WriteMappedError translates a service or engine error into an API error.
func (b *Base) WriteMappedError(w http.ResponseWriter, err error) {
	status, apiErr := dto.FromError(err)
	b.WriteJSON(w, status, apiErr)
}

// DecodeJSON decodes the request body into v, reporting a 400 on failure.
// Returns false when the response has already been written.
func (b *Base) DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		b.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return false
	}
	return true
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
