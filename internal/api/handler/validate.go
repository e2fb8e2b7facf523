package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/worldloop/worldloop/internal/api/models"
	"github.com/worldloop/worldloop/internal/api/response"
	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/rules"
)

// ValidateHandler handles itinerary validation.
type ValidateHandler struct {
	validator *rules.Validator
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(validator *rules.Validator) *ValidateHandler {
	return &ValidateHandler{validator: validator}
}

// Validate handles POST /v1/validate - run the full rule catalogue against a
// submitted itinerary. An invalid itinerary is still a 200: the report
// carries the findings. Only unprocessable requests are 4xx.
func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := req.FieldErrors(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid itinerary", errs)
		return
	}

	report, err := h.validator.Validate(r.Context(), req.Itinerary())
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrUnknownAirport):
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "segments", Message: "unknown airport code", Code: "UNKNOWN_AIRPORT"},
			})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			response.ServiceUnavailable(w, r, "validation cancelled")
		default:
			response.InternalError(w, r, "validation failed")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewValidateResponse(report))
}
