package app

import (
	"fmt"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/handlers"
	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/Khuslen88/secure-chat/internal/services/chat"
	"github.com/Khuslen88/secure-chat/internal/services/extract"
	"github.com/Khuslen88/secure-chat/internal/services/knowledge"
	"github.com/Khuslen88/secure-chat/internal/services/llm"
	"github.com/Khuslen88/secure-chat/internal/services/validation"
	"github.com/Khuslen88/secure-chat/internal/storage/badger"
	"github.com/Khuslen88/secure-chat/internal/storage/files"
	"github.com/ternarybob/arbor"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager
	FileStore      *files.Store

	ExtractService    interfaces.TextExtractor
	ValidationService *validation.Service
	KnowledgeService  interfaces.KnowledgeService
	LLMService        interfaces.LLMService
	ChatService       interfaces.ChatService

	ReconcileScheduler *knowledge.Scheduler

	APIHandler      *handlers.APIHandler
	ChatHandler     *handlers.ChatHandler
	DocumentHandler *handlers.DocumentHandler
	FileHandler     *handlers.FileHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if err := app.ReconcileScheduler.Start(cfg.Knowledge.ReconcileSchedule); err != nil {
		return nil, fmt.Errorf("failed to start reconciliation scheduler: %w", err)
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("model", app.LLMService.ModelName()).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage initializes the Badger index and the on-disk file stores
func (a *App) initStorage() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}
	a.StorageManager = storageManager

	fileStore, err := files.NewStore(&a.Config.Storage.Files, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create file store: %w", err)
	}
	a.FileStore = fileStore

	return nil
}

// initServices wires the extraction, knowledge, LLM, and chat services
func (a *App) initServices() error {
	a.ExtractService = extract.NewService(a.Logger)
	a.ValidationService = validation.NewService(a.Config.Knowledge.MaxFileSize, a.Logger)

	knowledgeService := knowledge.NewService(
		a.StorageManager.DocumentStorage(),
		a.ExtractService,
		a.FileStore,
		a.ValidationService,
		a.Logger,
	)
	a.KnowledgeService = knowledgeService
	a.ReconcileScheduler = knowledge.NewScheduler(knowledgeService, a.Logger)

	llmService, err := llm.NewClaudeService(&a.Config.Claude, a.Logger)
	if err != nil {
		return err
	}
	a.LLMService = llmService

	a.ChatService = chat.NewService(
		a.LLMService,
		a.KnowledgeService,
		a.StorageManager.MessageStorage(),
		&a.Config.Chat,
		a.Config.Knowledge.MaxContextChars,
		a.Logger,
	)

	return nil
}

// initHandlers wires the HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.LLMService)
	a.ChatHandler = handlers.NewChatHandler(a.ChatService, a.Logger)
	a.DocumentHandler = handlers.NewDocumentHandler(a.KnowledgeService, a.Config.Knowledge.MaxContextChars, a.Logger)
	a.FileHandler = handlers.NewFileHandler(a.FileStore, a.ValidationService, a.Logger)
}

// Close releases application resources in reverse initialization order
func (a *App) Close() error {
	if a.ReconcileScheduler != nil {
		a.ReconcileScheduler.Stop()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage manager")
			return err
		}
		a.Logger.Info().Msg("Storage manager closed")
	}

	return nil
}
