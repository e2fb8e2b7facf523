package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/worldloop/worldloop/internal/api/models"
	"github.com/worldloop/worldloop/internal/api/response"
	"github.com/worldloop/worldloop/internal/geo"
	"github.com/worldloop/worldloop/internal/search"
)

// SearchHandler handles itinerary search.
type SearchHandler struct {
	orchestrator *search.Orchestrator
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(orchestrator *search.Orchestrator) *SearchHandler {
	return &SearchHandler{orchestrator: orchestrator}
}

// Search handles POST /v1/search - generate and rank valid itineraries. An
// exhausted budget is a 200 with partial=true, never an error.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := req.FieldErrors(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid search request", errs)
		return
	}

	result, err := h.orchestrator.Search(r.Context(), req.Spec())
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrUnknownAirport):
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "origin", Message: "unknown airport code", Code: "UNKNOWN_AIRPORT"},
			})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			response.ServiceUnavailable(w, r, "search cancelled")
		default:
			response.InternalError(w, r, "search failed")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewSearchResponse(result))
}
