package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPDF extracts text page by page using pdfcpu. Pages that yield no
// text are skipped; the remaining pages are joined with newlines in page
// order, so one unreadable page never fails the whole document.
func (s *Service) extractPDF(path string) (string, error) {
	conf := model.NewDefaultConfiguration()

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp("", "securechat-pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("PDF content extraction failed, treating all pages as empty")
		return "", nil
	}

	// pdfcpu writes one content file per page; filenames vary by version
	// so match both known patterns.
	pageTexts := make(map[int]string)
	entries, _ := os.ReadDir(outDir)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var pageNum int
		name := entry.Name()
		if _, err := fmt.Sscanf(name, "page_%d", &pageNum); err != nil {
			// Some versions prefix the content file with the source PDF's
			// basename, e.g. "doc_Content_page_1.txt".
			idx := strings.Index(name, "Content_page_")
			if idx < 0 {
				continue
			}
			if _, err := fmt.Sscanf(name[idx:], "Content_page_%d", &pageNum); err != nil {
				continue
			}
		}
		content, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			s.logger.Debug().Err(err).Str("file", name).Msg("Skipping unreadable PDF page content")
			continue
		}
		pageTexts[pageNum] = string(content)
	}

	return joinPageTexts(pageTexts, pageCount), nil
}

// joinPageTexts assembles per-page text in page order, skipping pages that
// yielded nothing.
func joinPageTexts(pageTexts map[int]string, pageCount int) string {
	var parts []string
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text := strings.TrimSpace(pageTexts[pageNum])
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n")
}
