package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/models"
)

// scoredDocument pairs an index entry with its loaded artifact and score
type scoredDocument struct {
	entry *models.Document
	text  string
	score int
}

// GetRelevantContext converts a user query into a bounded, relevance-ranked
// excerpt of the knowledge base, formatted as labeled document sections for
// prompt injection. The result never exceeds maxChars; sections are included
// whole or not at all. Repeated calls over identical state return identical
// output.
func (s *Service) GetRelevantContext(ctx context.Context, query string, maxChars int) (string, error) {
	// Snapshot the index under the read lock; artifact loads and scoring
	// run outside it so a slow document never stalls a concurrent ingest.
	s.mu.RLock()
	entries, err := s.documents.All()
	s.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("failed to load document index: %w", err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	scored := make([]scoredDocument, 0, len(entries))
	for _, entry := range entries {
		text, err := s.files.ReadArtifact(entry.ID)
		if err != nil {
			// Index entry without its artifact is a consistency fault:
			// degrade by skipping, never fail the query.
			if errors.Is(err, common.ErrNotFound) {
				s.logger.Debug().Str("id", entry.ID).Str("name", entry.OriginalName).Msg("Skipping document with missing artifact")
			} else {
				s.logger.Warn().Err(err).Str("id", entry.ID).Msg("Skipping unreadable document artifact")
			}
			continue
		}
		scored = append(scored, scoredDocument{
			entry: entry,
			text:  text,
			score: Score(query, text),
		})
	}

	// Stable sort keeps insertion order among equal scores, making results
	// deterministic across repeated calls.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var result strings.Builder
	for _, doc := range scored {
		if doc.score == 0 {
			continue
		}
		section := fmt.Sprintf("=== DOCUMENT: %s ===\n%s\n\n", doc.entry.OriginalName, doc.text)
		if result.Len()+len(section) > maxChars {
			break
		}
		result.WriteString(section)
	}

	if result.Len() > 0 {
		s.logger.Debug().
			Int("documents_considered", len(scored)).
			Int("context_chars", result.Len()).
			Msg("Knowledge context assembled")
	}

	return result.String(), nil
}
