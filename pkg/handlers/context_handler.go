package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/logging"
	"github.com/crmlens/context-engine/pkg/services"
)

// ContextRequest is the body of POST /api/context.
type ContextRequest struct {
	Query string `json:"query"`
	// Strategy optionally overrides the configured filter strategy for
	// this request: "selective" or "comprehensive".
	Strategy string `json:"strategy,omitempty"`
}

// RebuildResponse is the body of a successful POST /api/rebuild.
type RebuildResponse struct {
	Status  string `json:"status"`
	Objects int    `json:"objects"`
	Fields  int    `json:"fields"`
}

// ContextHandler serves context query evaluation and index rebuilds.
type ContextHandler struct {
	svc    services.ContextService
	logger *zap.Logger
}

// NewContextHandler creates a new ContextHandler.
func NewContextHandler(svc services.ContextService, logger *zap.Logger) *ContextHandler {
	return &ContextHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the context handler's routes on the given mux.
func (h *ContextHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/context", h.GetContext)
	mux.HandleFunc("/api/rebuild", h.Rebuild)
}

// GetContext handles POST /api/context requests. The response is always a
// well-formed context payload; scoring failures surface as fallback-mode
// payloads rather than HTTP errors.
func (h *ContextHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req ContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "query is required")
		return
	}

	var payload interface{}
	if req.Strategy != "" {
		payload = h.svc.GetContextWithStrategy(r.Context(), req.Query, req.Strategy)
	} else {
		payload = h.svc.GetContext(r.Context(), req.Query)
	}

	if err := WriteJSON(w, http.StatusOK, payload); err != nil {
		h.logger.Error("Failed to encode context response",
			zap.Error(err),
			zap.String("query", logging.SanitizeQuery(req.Query)))
	}
}

// Rebuild handles POST /api/rebuild requests, forcing a snapshot reload
// and index rebuild.
func (h *ContextHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	if err := h.svc.Rebuild(r.Context()); err != nil {
		h.logger.Error("Index rebuild failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusServiceUnavailable, "rebuild_failed", err.Error())
		return
	}

	objects, fields, _ := h.svc.Stats()
	if err := WriteJSON(w, http.StatusOK, RebuildResponse{
		Status:  "ok",
		Objects: objects,
		Fields:  fields,
	}); err != nil {
		h.logger.Error("Failed to encode rebuild response", zap.Error(err))
	}
}
