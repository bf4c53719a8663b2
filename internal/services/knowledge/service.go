package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/Khuslen88/secure-chat/internal/models"
	"github.com/Khuslen88/secure-chat/internal/storage/files"
	"github.com/ternarybob/arbor"
)

// Service manages the company knowledge base: ingestion of uploaded
// documents, metadata listing, removal, and query-time context retrieval.
//
// All index mutations are serialized through one process-wide mutex; reads
// take the shared side for the index snapshot only. Extraction and scoring
// are never held under the lock.
type Service struct {
	documents interfaces.DocumentStorage
	extractor interfaces.TextExtractor
	files     *files.Store
	validator UploadValidator
	logger    arbor.ILogger
	mu        sync.RWMutex
}

// UploadValidator gates uploads before any storage mutation
type UploadValidator interface {
	ValidateUpload(filename string, data []byte) error
}

// Compile-time interface assertion
var _ interfaces.KnowledgeService = (*Service)(nil)

// NewService creates a knowledge base service
func NewService(
	documents interfaces.DocumentStorage,
	extractor interfaces.TextExtractor,
	fileStore *files.Store,
	validator UploadValidator,
	logger arbor.ILogger,
) *Service {
	return &Service{
		documents: documents,
		extractor: extractor,
		files:     fileStore,
		validator: validator,
		logger:    logger,
	}
}

// AddDocument ingests an uploaded file into the knowledge base. The flow
// is validate, save blob, extract, persist artifact, append index entry;
// an extraction failure deletes the just-saved blob so no partial state
// remains.
func (s *Service) AddDocument(ctx context.Context, filename string, data []byte) (*models.Document, error) {
	name := common.SanitizeFilename(filename)
	if name == "" {
		return nil, fmt.Errorf("%w: invalid filename", common.ErrInvalidInput)
	}

	ext := common.FileExtension(name)
	if !s.extractor.Supported(ext) {
		return nil, fmt.Errorf("%w: knowledge base only accepts: .csv, .docx, .pdf, .txt, .xlsx", common.ErrInvalidInput)
	}

	if err := s.validator.ValidateUpload(name, data); err != nil {
		return nil, err
	}

	id := common.NewDocumentID()
	storedName := id + ext

	if err := s.files.SaveBlob(storedName, data); err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(s.files.BlobPath(storedName), ext)
	if err != nil {
		// Roll back the blob; nothing has reached the index yet.
		if delErr := s.files.DeleteBlob(storedName); delErr != nil {
			s.logger.Warn().Err(delErr).Str("stored_name", storedName).Msg("Failed to roll back blob after extraction failure")
		}
		return nil, err
	}

	if err := s.files.SaveArtifact(id, text); err != nil {
		if delErr := s.files.DeleteBlob(storedName); delErr != nil {
			s.logger.Warn().Err(delErr).Str("stored_name", storedName).Msg("Failed to roll back blob after artifact write failure")
		}
		return nil, err
	}

	doc := &models.Document{
		ID:           id,
		OriginalName: name,
		StoredName:   storedName,
		Extension:    ext,
		Size:         int64(len(data)),
		TextLength:   len(text),
		UploadedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	err = s.documents.Save(doc)
	s.mu.Unlock()
	if err != nil {
		// Index write failed: remove the orphaned blob and artifact.
		if delErr := s.files.DeleteBlob(storedName); delErr != nil {
			s.logger.Warn().Err(delErr).Str("stored_name", storedName).Msg("Failed to roll back blob after index write failure")
		}
		if delErr := s.files.DeleteArtifact(id); delErr != nil {
			s.logger.Warn().Err(delErr).Str("id", id).Msg("Failed to roll back artifact after index write failure")
		}
		return nil, err
	}

	s.logger.Info().
		Str("id", id).
		Str("name", name).
		Int64("size", doc.Size).
		Int("text_length", doc.TextLength).
		Msg("Document ingested into knowledge base")

	return doc, nil
}

// ListDocuments returns entry metadata in insertion order
func (s *Service) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents.All()
}

// RemoveDocument deletes the raw blob, the extracted artifact, and the
// index entry as one logical unit. Deletion is best-effort: a failure on
// one piece does not block the others, and the entry is always gone from
// list and query results afterwards. Returns false when the id is absent.
func (s *Service) RemoveDocument(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.documents.Get(id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.files.DeleteBlob(doc.StoredName); err != nil {
		s.logger.Warn().Err(err).Str("id", id).Msg("Failed to delete document blob")
	}
	if err := s.files.DeleteArtifact(id); err != nil {
		s.logger.Warn().Err(err).Str("id", id).Msg("Failed to delete extracted text artifact")
	}
	if err := s.documents.Delete(id); err != nil {
		return false, err
	}

	s.logger.Info().Str("id", id).Str("name", doc.OriginalName).Msg("Document removed from knowledge base")
	return true, nil
}

// Stats summarizes the current knowledge base
func (s *Service) Stats(ctx context.Context) (*models.KnowledgeStats, error) {
	s.mu.RLock()
	entries, err := s.documents.All()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	stats := &models.KnowledgeStats{
		TotalDocuments: len(entries),
		ByExtension:    make(map[string]int),
	}
	for _, entry := range entries {
		stats.TotalBytes += entry.Size
		stats.TotalTextChars += int64(entry.TextLength)
		stats.ByExtension[entry.Extension]++
	}
	return stats, nil
}

// Reconcile sweeps the index and the artifact directory for consistency
// faults: entries whose artifact is gone (those are skipped at query time)
// and artifacts with no index entry (leftovers from failed removals, which
// are deleted). Runs on the maintenance schedule.
func (s *Service) Reconcile(ctx context.Context) (*models.ReconcileReport, error) {
	s.mu.RLock()
	entries, err := s.documents.All()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	report := &models.ReconcileReport{Checked: len(entries)}

	indexed := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		indexed[entry.ID] = struct{}{}
		if !s.files.HasArtifact(entry.ID) {
			report.OrphanedEntries++
			s.logger.Warn().Str("id", entry.ID).Str("name", entry.OriginalName).Msg("Index entry has no extracted text artifact")
		}
	}

	artifactIDs, err := s.files.ListArtifactIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range artifactIDs {
		if _, ok := indexed[id]; ok {
			continue
		}
		report.OrphanedArtifacts++
		if err := s.files.DeleteArtifact(id); err != nil {
			s.logger.Warn().Err(err).Str("id", id).Msg("Failed to delete orphaned artifact")
		} else {
			s.logger.Info().Str("id", id).Msg("Deleted orphaned extracted text artifact")
		}
	}

	if report.OrphanedEntries > 0 || report.OrphanedArtifacts > 0 {
		s.logger.Warn().
			Int("orphaned_entries", report.OrphanedEntries).
			Int("orphaned_artifacts", report.OrphanedArtifacts).
			Msg("Knowledge base reconciliation found inconsistencies")
	}

	return report, nil
}
