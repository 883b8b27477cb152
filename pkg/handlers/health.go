package handlers

import (
	"net/http"
	"runtime"

	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/config"
	"github.com/crmlens/context-engine/pkg/services"
)

// PingResponse contains service status, version and index information.
type PingResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Service      string `json:"service"`
	GoVersion    string `json:"go_version"`
	Environment  string `json:"environment"`
	IndexReady   bool   `json:"index_ready"`
	IndexObjects int    `json:"index_objects"`
	IndexFields  int    `json:"index_fields"`
}

// HealthHandler handles health check and ping endpoints.
type HealthHandler struct {
	cfg    *config.Config
	svc    services.ContextService
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config, svc services.ContextService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, svc: svc, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ping", h.Ping)
}

// Health handles GET /health requests.
// Returns a simple "ok" status for load balancer health checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ping handles GET /ping requests.
// Returns service information including version and index readiness.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	objects, fields, ready := h.svc.Stats()

	response := PingResponse{
		Status:       "ok",
		Version:      h.cfg.Version,
		Service:      "context-engine",
		GoVersion:    runtime.Version(),
		Environment:  h.cfg.Env,
		IndexReady:   ready,
		IndexObjects: objects,
		IndexFields:  fields,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
