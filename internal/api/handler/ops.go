// Package handler provides HTTP handlers for the worldloop API.
package handler

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/worldloop/worldloop/internal/api/models"
	"github.com/worldloop/worldloop/internal/api/response"
	"github.com/worldloop/worldloop/internal/provider/resilience"
	"github.com/worldloop/worldloop/internal/signals"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	signals   *signals.Service
}

// NewOpsHandler creates a new OpsHandler. Registry and signals may be nil
// when the deployment runs without external providers.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry, sig *signals.Service) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		signals:   sig,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The core is
// stateless; readiness only degrades when every signal provider circuit is
// open.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	if h.registry != nil && h.registry.ProviderCount() > 0 {
		open := 0
		for _, p := range h.registry.GetAllHealth() {
			if p.IsUnhealthy() {
				open++
			}
		}
		if open == h.registry.ProviderCount() {
			status = models.HealthStatusDegraded
		}
	}
	health := models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and cache status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(time.Now()),
		Providers: []models.ProviderStatus{},
	}

	if h.registry != nil {
		for _, p := range h.registry.GetAllHealth() {
			ps := models.ProviderStatus{
				Provider:     p.Name,
				Status:       providerHealthStatus(p),
				CircuitState: p.CircuitState.String(),
				FailureCount: int64(p.Counts.TotalFailures),
			}
			if p.LastSuccessAt != nil {
				ts := models.Timestamp(*p.LastSuccessAt)
				ps.LastSuccessAt = &ts
			}
			if p.LastFailureAt != nil {
				ts := models.Timestamp(*p.LastFailureAt)
				ps.LastFailureAt = &ts
			}
			status.Providers = append(status.Providers, ps)
			if ps.Status != models.HealthStatusOK && status.Status == models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}
		}
	}

	if h.signals != nil {
		stats := h.signals.Stats()
		status.Cache = &models.CacheStatus{
			TotalEntries: stats.TotalEntries,
			FreshEntries: stats.FreshEntries,
			StaleEntries: stats.StaleEntries,
			Provider:     stats.Provider,
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerHealthStatus(p *resilience.ProviderHealth) models.HealthStatus {
	switch p.CircuitState {
	case gobreaker.StateOpen:
		return models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
