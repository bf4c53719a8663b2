package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// uploadMemoryLimit bounds the multipart parser's in-memory buffer.
// Anything larger spills to disk before validation runs.
const uploadMemoryLimit = 10 << 20

// DocumentHandler handles knowledge base document HTTP requests
type DocumentHandler struct {
	knowledgeService interfaces.KnowledgeService
	maxContextChars  int
	logger           arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(knowledgeService interfaces.KnowledgeService, maxContextChars int, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		knowledgeService: knowledgeService,
		maxContextChars:  maxContextChars,
		logger:           logger,
	}
}

// UploadHandler handles POST /api/knowledge/documents requests with a
// multipart "file" field.
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read uploaded file")
		WriteError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	doc, err := h.knowledgeService.AddDocument(r.Context(), header.Filename, data)
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", header.Filename).Msg("Document ingestion rejected")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, doc)
}

// ListHandler handles GET /api/knowledge/documents requests
func (h *DocumentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := h.knowledgeService.ListDocuments(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list documents")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	})
}

// DocumentsHandler dispatches /api/knowledge/documents by method
func (h *DocumentHandler) DocumentsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListHandler(w, r)
	case http.MethodPost:
		h.UploadHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// DeleteHandler handles DELETE /api/knowledge/documents/{id} requests
func (h *DocumentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "DELETE") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/knowledge/documents/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	removed, err := h.knowledgeService.RemoveDocument(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("Failed to remove document")
		WriteServiceError(w, err)
		return
	}
	if !removed {
		WriteError(w, http.StatusNotFound, "Document not found")
		return
	}

	WriteSuccess(w, "Document removed")
}

// ContextHandler handles GET /api/knowledge/context requests. Exposes the
// retrieval pipeline directly so operators can inspect what the assistant
// would be given for a query.
func (h *DocumentHandler) ContextHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	maxChars := QueryInt(r, "max_chars", h.maxContextChars)
	context, err := h.knowledgeService.GetRelevantContext(r.Context(), query, maxChars)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to assemble knowledge context")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":         query,
		"max_chars":     maxChars,
		"context":       context,
		"context_chars": len(context),
	})
}

// StatsHandler handles GET /api/knowledge/stats requests
func (h *DocumentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	stats, err := h.knowledgeService.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to compute knowledge stats")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// ReconcileHandler handles POST /api/knowledge/reconcile requests,
// triggering the consistency sweep outside its schedule.
func (h *DocumentHandler) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	report, err := h.knowledgeService.Reconcile(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Knowledge reconciliation failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}
