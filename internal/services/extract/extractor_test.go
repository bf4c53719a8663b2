package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/xuri/excelize/v2"
)

func newTestService() *Service {
	return NewService(arbor.NewLogger())
}

func TestExtract_PlainText(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "policy.txt")
	require.NoError(t, os.WriteFile(path, []byte("Vacation requests require 2 weeks notice"), 0644))

	text, err := svc.Extract(path, ".txt")
	require.NoError(t, err)
	require.Equal(t, "Vacation requests require 2 weeks notice", text)
}

func TestExtract_PlainTextReplacesInvalidUTF8(t *testing.T) {
	svc := newTestService()

	// Latin-1 encoded bytes that are not valid UTF-8
	path := filepath.Join(t.TempDir(), "legacy.csv")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9, ',', '1'}, 0644))

	text, err := svc.Extract(path, ".csv")
	require.NoError(t, err)
	require.Contains(t, text, "caf")
	require.Contains(t, text, "�")
	require.Contains(t, text, ",1")
}

func TestExtract_UnknownExtension(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "binary.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0644))

	text, err := svc.Extract(path, ".bin")
	require.NoError(t, err)
	require.Empty(t, text)
}

func TestSupported(t *testing.T) {
	svc := newTestService()

	for _, ext := range []string{".txt", ".csv", ".pdf", ".docx", ".xlsx"} {
		if !svc.Supported(ext) {
			t.Errorf("Supported(%s) = false, want true", ext)
		}
	}
	if svc.Supported(".exe") {
		t.Error("Supported(.exe) = true, want false")
	}
	if !svc.Supported(".PDF") {
		t.Error("Supported(.PDF) = false, want case-insensitive true")
	}
}

func TestExtract_PDF(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "handbook.pdf")
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(40, 10, "Employee Handbook")
	pdf.AddPage()
	pdf.Cell(40, 10, "Chapter Two")
	require.NoError(t, pdf.OutputFileAndClose(path))

	text, err := svc.Extract(path, ".pdf")
	require.NoError(t, err)
	require.Contains(t, text, "Employee Handbook")
	require.Contains(t, text, "Chapter Two")
	require.Less(t, strings.Index(text, "Employee Handbook"), strings.Index(text, "Chapter Two"),
		"pages must appear in document order")
}

func TestExtract_PDFSkipsBlankPage(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "gappy.pdf")
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(40, 10, "Security Policy")
	pdf.AddPage() // nothing drawn on page two
	pdf.AddPage()
	pdf.Cell(40, 10, "Incident Response")
	require.NoError(t, pdf.OutputFileAndClose(path))

	text, err := svc.Extract(path, ".pdf")
	require.NoError(t, err)
	require.Contains(t, text, "Security Policy")
	require.Contains(t, text, "Incident Response")
	require.Less(t, strings.Index(text, "Security Policy"), strings.Index(text, "Incident Response"))
}

func TestJoinPageTexts(t *testing.T) {
	pages := map[int]string{
		1: "first page",
		2: "   ",
		4: "fourth page",
	}

	// Page 2 is whitespace only and page 3 yielded nothing; both are
	// skipped without breaking the order of the remaining pages.
	if got := joinPageTexts(pages, 4); got != "first page\nfourth page" {
		t.Errorf("joinPageTexts = %q, want %q", got, "first page\nfourth page")
	}
	if got := joinPageTexts(map[int]string{}, 3); got != "" {
		t.Errorf("joinPageTexts on empty map = %q, want empty", got)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 this is not a real pdf"), 0644))

	_, err := svc.Extract(path, ".pdf")
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrExtractionFailed))
}

// writeTestDocx builds a minimal OOXML archive with the given paragraphs
func writeTestDocx(t *testing.T, path string, paragraphs []string) {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestExtract_DOCX(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "onboarding.docx")
	writeTestDocx(t, path, []string{"Welcome to the team", "", "Your first week"})

	text, err := svc.Extract(path, ".docx")
	require.NoError(t, err)

	// Non-empty paragraphs in document order, newline separated
	require.Equal(t, "Welcome to the team\nYour first week", text)
}

func TestExtract_DOCXMissingDocument(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = svc.Extract(path, ".docx")
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrExtractionFailed))
}

func TestReadDocumentXML_HyperlinkRuns(t *testing.T) {
	xml := `<w:document xmlns:w="http://example/ns"><w:body>` +
		`<w:p><w:r><w:t>See </w:t></w:r><w:hyperlink><w:r><w:t>the portal</w:t></w:r></w:hyperlink></w:p>` +
		`</w:body></w:document>`

	text, err := readDocumentXML(strings.NewReader(xml))
	require.NoError(t, err)
	require.Equal(t, "See the portal", text)
}

func TestExtract_XLSX(t *testing.T) {
	svc := newTestService()

	path := filepath.Join(t.TempDir(), "budget.xlsx")
	workbook := excelize.NewFile()
	require.NoError(t, workbook.SetCellValue("Sheet1", "A1", "Team"))
	require.NoError(t, workbook.SetCellValue("Sheet1", "B1", "Budget"))
	require.NoError(t, workbook.SetCellValue("Sheet1", "A2", "IT"))
	require.NoError(t, workbook.SetCellValue("Sheet1", "B2", 120000))
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	text, err := svc.Extract(path, ".xlsx")
	require.NoError(t, err)

	require.Contains(t, text, "--- Sheet: Sheet1 ---")
	require.Contains(t, text, "Team\tBudget")
	require.Contains(t, text, "IT\t120000")
}
