package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/services/validation"
	"github.com/Khuslen88/secure-chat/internal/storage/files"
	"github.com/ternarybob/arbor"
)

// FileHandler handles general attachment uploads and downloads
type FileHandler struct {
	fileStore *files.Store
	validator *validation.Service
	logger    arbor.ILogger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileStore *files.Store, validator *validation.Service, logger arbor.ILogger) *FileHandler {
	return &FileHandler{
		fileStore: fileStore,
		validator: validator,
		logger:    logger,
	}
}

// UploadHandler handles POST /api/files requests with a multipart "file"
// field. Colliding names are deduplicated with a numeric suffix rather
// than overwritten.
func (h *FileHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read uploaded file")
		WriteError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	name := common.SanitizeFilename(header.Filename)
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	if err := h.validator.ValidateUpload(name, data); err != nil {
		h.logger.Warn().Err(err).Str("filename", name).Msg("Upload rejected")
		WriteServiceError(w, err)
		return
	}

	storedName, err := h.fileStore.SaveUpload(name, data)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", name).Msg("Failed to store upload")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"filename": storedName,
		"size":     len(data),
	})
}

// DownloadHandler handles GET /api/files/{name} requests. The name is
// sanitized before path resolution, so traversal attempts resolve to
// nothing rather than to files outside the uploads directory.
func (h *FileHandler) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Filename is required")
		return
	}

	path, err := h.fileStore.UploadPath(name)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment")
	http.ServeFile(w, r, path)
}
