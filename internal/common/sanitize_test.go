package common

import (
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain filename unchanged",
			input: "policy.pdf",
			want:  "policy.pdf",
		},
		{
			name:  "path components stripped",
			input: "../../etc/passwd",
			want:  "passwd",
		},
		{
			name:  "windows path stripped",
			input: `C:\Users\intern\report.docx`,
			want:  "report.docx",
		},
		{
			name:  "spaces become underscores",
			input: "Q3 onboarding plan.xlsx",
			want:  "Q3_onboarding_plan.xlsx",
		},
		{
			name:  "unsafe characters dropped",
			input: "bud;get<2026>.csv",
			want:  "budget2026.csv",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "dot-only input",
			input: "..",
			want:  "",
		},
		{
			name:  "nothing safe remains",
			input: "<<<>>>",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileExtension(t *testing.T) {
	if got := FileExtension("Report.PDF"); got != ".pdf" {
		t.Errorf("FileExtension(Report.PDF) = %q, want .pdf", got)
	}
	if got := FileExtension("README"); got != "" {
		t.Errorf("FileExtension(README) = %q, want empty", got)
	}
	if got := FileExtension("archive.tar.gz"); got != ".gz" {
		t.Errorf("FileExtension(archive.tar.gz) = %q, want .gz", got)
	}
}
