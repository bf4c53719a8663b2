package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/Khuslen88/secure-chat/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/ternarybob/arbor"
)

// Service implements the chat exchange: it persists both sides of the
// conversation, injects knowledge base context into the system prompt,
// and round-trips the LLM.
type Service struct {
	llm             interfaces.LLMService
	knowledge       interfaces.KnowledgeService
	messages        interfaces.MessageStorage
	sanitizer       *bluemonday.Policy
	logger          arbor.ILogger
	companyName     string
	historyLimit    int
	maxContextChars int
}

// Compile-time interface assertion
var _ interfaces.ChatService = (*Service)(nil)

// NewService creates a chat service
func NewService(
	llm interfaces.LLMService,
	knowledge interfaces.KnowledgeService,
	messages interfaces.MessageStorage,
	chatConfig *common.ChatConfig,
	maxContextChars int,
	logger arbor.ILogger,
) *Service {
	historyLimit := chatConfig.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 50
	}

	return &Service{
		llm:       llm,
		knowledge: knowledge,
		messages:  messages,
		// StrictPolicy strips every HTML tag, leaving plain text. The
		// sanitized form is what gets stored and sent to the model.
		sanitizer:       bluemonday.StrictPolicy(),
		logger:          logger,
		companyName:     chatConfig.CompanyName,
		historyLimit:    historyLimit,
		maxContextChars: maxContextChars,
	}
}

// Chat handles one exchange: sanitize and persist the employee message,
// retrieve knowledge context for the query, call the model with
// [system, history..., user], and persist the assistant reply.
func (s *Service) Chat(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	username := strings.TrimSpace(req.Username)
	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Message))
	if username == "" || content == "" {
		return nil, fmt.Errorf("%w: username and message are required", common.ErrInvalidInput)
	}

	// History is loaded before the new message is stored so the model does
	// not see the question twice.
	history, err := s.messages.Recent(s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	userMsg := &models.Message{
		ID:        common.NewMessageID(),
		Username:  username,
		Role:      models.RoleUser,
		Content:   content,
		Filename:  req.Filename,
		Timestamp: time.Now().UTC(),
	}
	if err := s.messages.Save(userMsg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	knowledgeContext, err := s.knowledge.GetRelevantContext(ctx, content, s.maxContextChars)
	if err != nil {
		// Retrieval trouble degrades to an uninformed answer, it never
		// blocks the conversation.
		s.logger.Warn().Err(err).Msg("Knowledge context retrieval failed, answering without context")
		knowledgeContext = ""
	}

	llmMessages := make([]interfaces.Message, 0, len(history)+2)
	llmMessages = append(llmMessages, interfaces.Message{
		Role:    models.RoleSystem,
		Content: BuildSystemPrompt(s.companyName, knowledgeContext),
	})
	for _, msg := range history {
		llmMessages = append(llmMessages, interfaces.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	llmMessages = append(llmMessages, interfaces.Message{
		Role:    models.RoleUser,
		Content: content,
	})

	reply, err := s.llm.Chat(ctx, llmMessages)
	if err != nil {
		return nil, fmt.Errorf("assistant is unavailable: %w", err)
	}

	assistantMsg := &models.Message{
		ID:        common.NewMessageID(),
		Username:  "assistant",
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	}
	if err := s.messages.Save(assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to store assistant reply: %w", err)
	}

	s.logger.Info().
		Str("username", username).
		Int("history_count", len(history)).
		Int("context_chars", len(knowledgeContext)).
		Int("reply_length", len(reply)).
		Msg("Chat exchange completed")

	return &interfaces.ChatResponse{
		Message:      assistantMsg,
		ContextChars: len(knowledgeContext),
		Model:        s.llm.ModelName(),
	}, nil
}

// History returns the most recent stored messages in chronological order.
// A non-positive limit falls back to the configured default.
func (s *Service) History(ctx context.Context, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.messages.Recent(limit)
}
