package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/ternarybob/arbor"
)

// Store manages the on-disk layout of the knowledge base: one raw blob per
// document ({id}{ext} under the documents dir), one extracted text artifact
// per document ({id}.txt under the extracted dir), and general attachment
// uploads under the uploads dir.
type Store struct {
	documentsDir string
	extractedDir string
	uploadsDir   string
	logger       arbor.ILogger
}

// NewStore creates the directory layout and returns a Store
func NewStore(config *common.FilesConfig, logger arbor.ILogger) (*Store, error) {
	for _, dir := range []string{config.Documents, config.Extracted, config.Uploads} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}

	return &Store{
		documentsDir: config.Documents,
		extractedDir: config.Extracted,
		uploadsDir:   config.Uploads,
		logger:       logger,
	}, nil
}

// BlobPath returns the raw document path for a stored name
func (s *Store) BlobPath(storedName string) string {
	return filepath.Join(s.documentsDir, storedName)
}

// ArtifactPath returns the extracted text artifact path for a document id
func (s *Store) ArtifactPath(id string) string {
	return filepath.Join(s.extractedDir, id+".txt")
}

// SaveBlob writes the raw document bytes under its stored name
func (s *Store) SaveBlob(storedName string, data []byte) error {
	if err := os.WriteFile(s.BlobPath(storedName), data, 0644); err != nil {
		return fmt.Errorf("failed to save document blob: %w", err)
	}
	return nil
}

// SaveArtifact writes the extracted text for a document id
func (s *Store) SaveArtifact(id, text string) error {
	if err := os.WriteFile(s.ArtifactPath(id), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to save extracted text artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads the extracted text for a document id.
// Missing artifacts return common.ErrNotFound so retrieval can skip the
// entry as a consistency fault rather than failing the query.
func (s *Store) ReadArtifact(id string) (string, error) {
	data, err := os.ReadFile(s.ArtifactPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("artifact %s: %w", id, common.ErrNotFound)
		}
		return "", fmt.Errorf("failed to read extracted text artifact: %w", err)
	}
	return string(data), nil
}

// HasArtifact reports whether the extracted text artifact exists
func (s *Store) HasArtifact(id string) bool {
	_, err := os.Stat(s.ArtifactPath(id))
	return err == nil
}

// DeleteBlob removes the raw document. Absent blobs are a no-op.
func (s *Store) DeleteBlob(storedName string) error {
	if err := os.Remove(s.BlobPath(storedName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document blob: %w", err)
	}
	return nil
}

// DeleteArtifact removes the extracted text artifact. Absent artifacts are a no-op.
func (s *Store) DeleteArtifact(id string) error {
	if err := os.Remove(s.ArtifactPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete extracted text artifact: %w", err)
	}
	return nil
}

// ListArtifactIDs returns the document ids that have an artifact on disk
func (s *Store) ListArtifactIDs() ([]string, error) {
	entries, err := os.ReadDir(s.extractedDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".txt" {
			ids = append(ids, name[:len(name)-len(".txt")])
		}
	}
	return ids, nil
}

// SaveUpload stores a general attachment upload under its sanitized name,
// deduplicating with an _N suffix when the name is taken. Returns the name
// the file was saved under.
func (s *Store) SaveUpload(filename string, data []byte) (string, error) {
	saveName := filename
	dest := filepath.Join(s.uploadsDir, saveName)

	ext := filepath.Ext(filename)
	base := filename[:len(filename)-len(ext)]
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		saveName = fmt.Sprintf("%s_%d%s", base, counter, ext)
		dest = filepath.Join(s.uploadsDir, saveName)
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	s.logger.Debug().Str("filename", saveName).Int("size", len(data)).Msg("Upload saved")
	return saveName, nil
}

// UploadPath resolves a previously saved upload. The name is re-sanitized
// so a crafted request cannot escape the uploads directory. Returns
// common.ErrNotFound for absent files.
func (s *Store) UploadPath(filename string) (string, error) {
	safe := common.SanitizeFilename(filename)
	if safe == "" {
		return "", fmt.Errorf("upload name %q: %w", filename, common.ErrInvalidInput)
	}

	path := filepath.Join(s.uploadsDir, safe)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("upload %s: %w", safe, common.ErrNotFound)
	}
	return path, nil
}
