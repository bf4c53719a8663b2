package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Chat
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatHandler)
	mux.HandleFunc("/api/chat/history", s.app.ChatHandler.HistoryHandler)

	// API routes - Knowledge base
	mux.HandleFunc("/api/knowledge/documents", s.app.DocumentHandler.DocumentsHandler) // GET (list), POST (upload)
	mux.HandleFunc("/api/knowledge/documents/", s.app.DocumentHandler.DeleteHandler)   // DELETE /{id}
	mux.HandleFunc("/api/knowledge/context", s.app.DocumentHandler.ContextHandler)
	mux.HandleFunc("/api/knowledge/stats", s.app.DocumentHandler.StatsHandler)
	mux.HandleFunc("/api/knowledge/reconcile", s.app.DocumentHandler.ReconcileHandler)

	// API routes - General attachments
	mux.HandleFunc("/api/files", s.app.FileHandler.UploadHandler)
	mux.HandleFunc("/api/files/", s.app.FileHandler.DownloadHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
