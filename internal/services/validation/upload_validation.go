package validation

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/ternarybob/arbor"
)

// allowedExtensions is the general upload allow-list. The knowledge base
// gates separately on the subset its extractors support.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".txt":  {},
	".docx": {},
	".gif":  {},
	".csv":  {},
	".xlsx": {},
}

// magicBytes maps extensions to their content signature. XLSX and DOCX
// are ZIP archives, so both share the PK signature.
var magicBytes = map[string][]byte{
	".png":  {0x89, 'P', 'N', 'G'},
	".jpg":  {0xff, 0xd8, 0xff},
	".jpeg": {0xff, 0xd8, 0xff},
	".gif":  []byte("GIF8"),
	".pdf":  []byte("%PDF"),
	".xlsx": []byte("PK"),
	".docx": []byte("PK"),
}

// Service validates uploads before any storage mutation: extension
// allow-list, size cap, and magic-byte sniffing so disguised content is
// rejected with a user-facing message.
type Service struct {
	maxFileSize int64
	logger      arbor.ILogger
}

// NewService creates an upload validation service
func NewService(maxFileSize int64, logger arbor.ILogger) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ValidateUpload checks a named upload against the allow-list, the size
// cap, and the content signature for its claimed type. All failures are
// ErrInvalidInput-classed with a message suitable for the employee.
func (s *Service) ValidateUpload(filename string, data []byte) error {
	if filename == "" {
		return fmt.Errorf("%w: no filename provided", common.ErrInvalidInput)
	}

	ext := common.FileExtension(filename)
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: file type %q is not allowed. Accepted types: %s",
			common.ErrInvalidInput, ext, allowedList())
	}

	if int64(len(data)) > s.maxFileSize {
		return fmt.Errorf("%w: file too large (%dKB). Maximum size is %dMB",
			common.ErrInvalidInput, len(data)/1024, s.maxFileSize/(1024*1024))
	}

	if len(data) == 0 {
		return fmt.Errorf("%w: file is empty", common.ErrInvalidInput)
	}

	if expected, ok := magicBytes[ext]; ok {
		if !bytes.HasPrefix(data, expected) {
			s.logger.Warn().Str("filename", filename).Str("extension", ext).Msg("Upload content does not match claimed type")
			return fmt.Errorf("%w: file content does not match its %q extension. Possible disguised file",
				common.ErrInvalidInput, ext)
		}
	}

	return nil
}

func allowedList() string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
