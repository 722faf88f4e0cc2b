package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FileStore defines persistence operations for reference file metadata.
// The file bytes themselves live in object storage under ObjectKey.
type FileStore interface {
	Create(ctx context.Context, file ReferenceFile) (ReferenceFile, error)
	GetByID(ctx context.Context, id uuid.UUID) (ReferenceFile, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]ReferenceFile, error)
	FilterByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]ReferenceFile, error)
}

// ReferenceFile represents a document an operator uploaded for reference.
type ReferenceFile struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	ObjectKey string
	CreatedAt time.Time
}
