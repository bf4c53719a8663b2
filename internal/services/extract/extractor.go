package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// extractFunc converts one stored document into plain text
type extractFunc func(path string) (string, error)

// Service dispatches extraction by file extension. New formats register
// here; scoring and assembly never touch format specifics.
type Service struct {
	extractors map[string]extractFunc
	logger     arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.TextExtractor = (*Service)(nil)

// NewService creates a text extractor with the default format table
func NewService(logger arbor.ILogger) *Service {
	s := &Service{logger: logger}
	s.extractors = map[string]extractFunc{
		".txt":  extractPlain,
		".csv":  extractPlain,
		".pdf":  s.extractPDF,
		".docx": extractDOCX,
		".xlsx": extractXLSX,
	}
	return s
}

// Supported reports whether an extension has a registered extractor
func (s *Service) Supported(extension string) bool {
	_, ok := s.extractors[strings.ToLower(extension)]
	return ok
}

// Extract converts the document at path into plain text. Unknown
// extensions yield an empty string without error; extraction failures
// are classed as ErrExtractionFailed for the ingestion rollback path.
func (s *Service) Extract(path, extension string) (string, error) {
	fn, ok := s.extractors[strings.ToLower(extension)]
	if !ok {
		s.logger.Debug().Str("extension", extension).Msg("No extractor registered, returning empty text")
		return "", nil
	}

	text, err := fn(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrExtractionFailed, extension, err)
	}
	return text, nil
}

// extractPlain reads .txt and .csv content directly. Undecodable byte
// sequences are replaced with U+FFFD rather than failing the read.
func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
}
