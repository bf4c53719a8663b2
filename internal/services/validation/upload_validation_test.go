package validation

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/ternarybob/arbor"
)

func TestValidateUpload(t *testing.T) {
	svc := NewService(1024, arbor.NewLogger())

	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  bool
	}{
		{
			name:     "valid text file",
			filename: "notes.txt",
			data:     []byte("hello"),
			wantErr:  false,
		},
		{
			name:     "valid pdf signature",
			filename: "report.pdf",
			data:     []byte("%PDF-1.7 rest of file"),
			wantErr:  false,
		},
		{
			name:     "valid docx signature",
			filename: "doc.docx",
			data:     []byte("PK\x03\x04 zip payload"),
			wantErr:  false,
		},
		{
			name:     "disallowed extension",
			filename: "script.exe",
			data:     []byte("MZ"),
			wantErr:  true,
		},
		{
			name:     "missing filename",
			filename: "",
			data:     []byte("data"),
			wantErr:  true,
		},
		{
			name:     "empty file",
			filename: "empty.txt",
			data:     nil,
			wantErr:  true,
		},
		{
			name:     "oversized file",
			filename: "big.txt",
			data:     bytes.Repeat([]byte("x"), 2048),
			wantErr:  true,
		},
		{
			name:     "disguised executable as pdf",
			filename: "malware.pdf",
			data:     []byte("MZ executable content"),
			wantErr:  true,
		},
		{
			name:     "png with wrong signature",
			filename: "image.png",
			data:     []byte("not a png"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateUpload(tt.filename, tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, common.ErrInvalidInput) {
					t.Errorf("error %v is not ErrInvalidInput", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
