package handler

import (
	"net/http"

	"github.com/worldloop/worldloop/internal/api/models"
	"github.com/worldloop/worldloop/internal/api/response"
	"github.com/worldloop/worldloop/internal/signals"
)

// SignalsHandler handles admin operations on the signal cache.
type SignalsHandler struct {
	service *signals.Service
}

// NewSignalsHandler creates a new SignalsHandler.
func NewSignalsHandler(service *signals.Service) *SignalsHandler {
	return &SignalsHandler{service: service}
}

// Stats handles GET /v1/admin/signals/stats - cache statistics.
func (h *SignalsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		response.NotFound(w, r, "no signal provider configured")
		return
	}
	stats := h.service.Stats()
	response.JSON(w, r, http.StatusOK, models.CacheStatus{
		TotalEntries: stats.TotalEntries,
		FreshEntries: stats.FreshEntries,
		StaleEntries: stats.StaleEntries,
		Provider:     stats.Provider,
	})
}

// Invalidate handles POST /v1/admin/signals/invalidate - drop every cached
// signal so the next lookups hit the provider.
func (h *SignalsHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		response.NotFound(w, r, "no signal provider configured")
		return
	}
	h.service.InvalidateCache()
	response.NoContent(w, r)
}
