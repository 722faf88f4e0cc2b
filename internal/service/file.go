package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// File manages reference files: metadata rows in the file store, bytes
// in object storage.
type File struct {
	fileStore model.FileStore
	storage   model.Storage
	logger    *logger.Logger
}

// NewFile creates a File service over the given store and storage.
func NewFile(fileStore model.FileStore, storage model.Storage, logger *logger.Logger) *File {
	return &File{
		fileStore: fileStore,
		storage:   storage,
		logger:    logger,
	}
}

// Register uploads the file bytes and records the reference file for
// the owner.
func (s *File) Register(ctx context.Context, ownerID uuid.UUID, name string, reader io.Reader) (model.ReferenceFile, error) {
	file := model.ReferenceFile{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		ObjectKey: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.storage.Upload(ctx, file.ObjectKey, reader); err != nil {
		return model.ReferenceFile{}, fmt.Errorf("failed to upload file: %w", err)
	}

	saved, err := s.fileStore.Create(ctx, file)
	if err != nil {
		return model.ReferenceFile{}, fmt.Errorf("failed to create file record: %w", err)
	}

	s.logger.Info("reference file registered", "owner_id", ownerID, "file_id", saved.ID, "name", name)
	return saved, nil
}

// List returns the owner's reference files, newest first.
func (s *File) List(ctx context.Context, ownerID uuid.UUID) ([]model.ReferenceFile, error) {
	files, err := s.fileStore.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get files by owner id: %w", err)
	}
	return files, nil
}

// Content streams the bytes of a reference file owned by the caller.
func (s *File) Content(ctx context.Context, ownerID, id uuid.UUID) (io.ReadCloser, error) {
	file, err := s.fileStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get file by id: %w", err)
	}

	if file.OwnerID != ownerID {
		return nil, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, file.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return reader, nil
}
