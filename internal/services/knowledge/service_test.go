package knowledge

import (
	"context"
	"os"
	"testing"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/services/extract"
	"github.com/Khuslen88/secure-chat/internal/services/validation"
	"github.com/Khuslen88/secure-chat/internal/storage/badger"
	"github.com/Khuslen88/secure-chat/internal/storage/files"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestAddDocument_Lifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.AddDocument(ctx, "handbook.txt", []byte("Employee handbook, 2026 edition"))
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)
	require.Equal(t, "handbook.txt", doc.OriginalName)
	require.Equal(t, ".txt", doc.Extension)
	require.Equal(t, int64(31), doc.Size)
	require.FileExists(t, svc.files.BlobPath(doc.StoredName))
	require.True(t, svc.files.HasArtifact(doc.ID))

	docs, err := svc.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, doc.ID, docs[0].ID)

	removed, err := svc.RemoveDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.True(t, removed)
	require.NoFileExists(t, svc.files.BlobPath(doc.StoredName))
	require.False(t, svc.files.HasArtifact(doc.ID))

	// Removing again reports absence, not an error.
	removed, err = svc.RemoveDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.False(t, removed)

	docs, err = svc.ListDocuments(ctx)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestAddDocument_ListPreservesInsertionOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	names := []string{"zulu.txt", "alpha.txt", "mike.txt"}
	for _, name := range names {
		addText(t, svc, name, "content of "+name)
	}

	docs, err := svc.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, name := range names {
		require.Equal(t, name, docs[i].OriginalName)
	}
}

func TestAddDocument_RejectsUnsupportedExtension(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddDocument(context.Background(), "script.exe", []byte("MZ"))
	require.ErrorIs(t, err, common.ErrInvalidInput)

	docs, err := svc.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestAddDocument_RejectsInvalidFilename(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{"", "..", "///"} {
		_, err := svc.AddDocument(context.Background(), name, []byte("data"))
		require.ErrorIs(t, err, common.ErrInvalidInput, "filename %q", name)
	}
}

func TestAddDocument_ExtractionFailureRollsBack(t *testing.T) {
	svc := newTestService(t)

	// Valid PDF magic bytes but a garbage body: passes upload validation,
	// fails extraction.
	_, err := svc.AddDocument(context.Background(), "corrupt.pdf", []byte("%PDF-1.7 not actually a pdf"))
	require.ErrorIs(t, err, common.ErrExtractionFailed)

	docs, listErr := svc.ListDocuments(context.Background())
	require.NoError(t, listErr)
	require.Empty(t, docs)

	// The rolled-back blob must not linger on disk.
	entries, readErr := os.ReadDir(svc.files.BlobPath(""))
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestAddDocument_IndexWriteFailureRollsBack(t *testing.T) {
	logger := arbor.NewLogger()

	manager, err := badger.NewManager(logger, &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)

	base := t.TempDir()
	fileStore, err := files.NewStore(&common.FilesConfig{
		Documents: base + "/documents",
		Extracted: base + "/extracted",
		Uploads:   base + "/uploads",
	}, logger)
	require.NoError(t, err)

	svc := NewService(
		manager.DocumentStorage(),
		extract.NewService(logger),
		fileStore,
		validation.NewService(5*1024*1024, logger),
		logger,
	)

	// Closing the store makes the index write fail after the blob and
	// artifact have already been written.
	require.NoError(t, manager.Close())

	_, err = svc.AddDocument(context.Background(), "policy.txt", []byte("Vacation requests require 2 weeks notice"))
	require.Error(t, err)

	entries, readErr := os.ReadDir(fileStore.BlobPath(""))
	require.NoError(t, readErr)
	require.Empty(t, entries)

	ids, listErr := fileStore.ListArtifactIDs()
	require.NoError(t, listErr)
	require.Empty(t, ids)
}

func TestRemoveDocument_GoneFromContext(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id := addText(t, svc, "wifi.txt", "Guest wifi password rotates monthly")

	result, err := svc.GetRelevantContext(ctx, "wifi password", 2000)
	require.NoError(t, err)
	require.Contains(t, result, "wifi.txt")

	removed, err := svc.RemoveDocument(ctx, id)
	require.NoError(t, err)
	require.True(t, removed)

	result, err = svc.GetRelevantContext(ctx, "wifi password", 2000)
	require.NoError(t, err)
	require.Empty(t, result)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)

	addText(t, svc, "one.txt", "alpha")
	addText(t, svc, "two.txt", "bravo charlie")
	addText(t, svc, "three.csv", "a,b,c")

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalDocuments)
	require.Equal(t, 2, stats.ByExtension[".txt"])
	require.Equal(t, 1, stats.ByExtension[".csv"])
	require.Equal(t, int64(5+13+5), stats.TotalBytes)
}

func TestReconcile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	keptID := addText(t, svc, "kept.txt", "still consistent")
	brokenID := addText(t, svc, "broken.txt", "artifact will vanish")

	// Entry without artifact: reported, not repaired.
	require.NoError(t, svc.files.DeleteArtifact(brokenID))
	// Artifact without entry: deleted.
	require.NoError(t, svc.files.SaveArtifact("doc_orphan", "left behind"))

	report, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, report.Checked)
	require.Equal(t, 1, report.OrphanedEntries)
	require.Equal(t, 1, report.OrphanedArtifacts)
	require.False(t, svc.files.HasArtifact("doc_orphan"))
	require.True(t, svc.files.HasArtifact(keptID))
}
