package handlers

import (
	"net/http"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/ternarybob/arbor"
)

type APIHandler struct {
	llmService interfaces.LLMService
	logger     arbor.ILogger
}

func NewAPIHandler(llmService interfaces.LLMService) *APIHandler {
	return &APIHandler{
		llmService: llmService,
		logger:     common.GetLogger(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status. The LLM probe is live, so a
// revoked API key or provider outage shows up here instead of on the next
// employee question.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if err := h.llmService.HealthCheck(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("LLM health check failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "degraded",
			"model":  h.llmService.ModelName(),
			"error":  err.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.llmService.ModelName(),
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
