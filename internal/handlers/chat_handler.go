package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService interfaces.ChatService
	logger      arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService interfaces.ChatService, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// ChatHandler handles POST /api/chat requests
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req interfaces.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode chat request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.logger.Info().
		Str("username", req.Username).
		Int("message_length", len(req.Message)).
		Msg("Processing chat request")

	response, err := h.chatService.Chat(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate chat response")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       response.Message,
		"context_chars": response.ContextChars,
		"model":         response.Model,
	})
}

// HistoryHandler handles GET /api/chat/history requests
func (h *ChatHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := QueryInt(r, "limit", 50)
	messages, err := h.chatService.History(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load chat history")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}
