package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// FileService manages reference files and their content.
type FileService interface {
	Register(ctx context.Context, ownerID uuid.UUID, name string, reader io.Reader) (model.ReferenceFile, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.ReferenceFile, error)
	Content(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, error)
}

// File handles reference file routes.
type File struct {
	files      FileService
	ctxManager model.ContextManager
	logger     *logger.Logger
}

// NewFile creates a File handler.
func NewFile(files FileService, ctxManager model.ContextManager, logger *logger.Logger) *File {
	return &File{
		files:      files,
		ctxManager: ctxManager,
		logger:     logger,
	}
}

// Register mounts the file routes on the router.
func (h *File) Register(r chi.Router) {
	r.Post("/files", h.upload)
	r.Get("/files", h.list)
	r.Get("/files/{id}/content", h.content)
}

func (h *File) upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "file is required"})
		return
	}
	defer file.Close()

	saved, err := h.files.Register(r.Context(), ownerID, header.Filename, file)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFileResponse(saved))
}

func (h *File) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	files, err := h.files.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toFileResponses(files))
}

func (h *File) content(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed file id"})
		return
	}

	reader, err := h.files.Content(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream file content", "file_id", id, "error", err)
	}
}
