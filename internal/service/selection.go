package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/model"
)

// Selection resolves client-supplied identifier lists into the customers
// and files they designate.
type Selection struct {
	customerStore model.CustomerStore
	fileStore     model.FileStore
}

// NewSelection creates a Selection resolver over the given stores.
func NewSelection(customerStore model.CustomerStore, fileStore model.FileStore) *Selection {
	return &Selection{
		customerStore: customerStore,
		fileStore:     fileStore,
	}
}

// Resolve looks up the given customer and file ids for the owner.
// Blank and malformed tokens are discarded, an empty list resolves to an
// empty set rather than "all records", and unknown ids are silently
// absent from the result.
func (s *Selection) Resolve(ctx context.Context, ownerID uuid.UUID, customerIDs, fileIDs []string) (model.QueryScope, error) {
	scope := model.QueryScope{
		Customers: []model.Customer{},
		Files:     []model.ReferenceFile{},
	}

	if ids := sanitizeIDs(customerIDs); len(ids) > 0 {
		customers, err := s.customerStore.FilterByIDs(ctx, ownerID, ids)
		if err != nil {
			return model.QueryScope{}, fmt.Errorf("failed to filter customers: %w", err)
		}
		scope.Customers = customers
	}

	if ids := sanitizeIDs(fileIDs); len(ids) > 0 {
		files, err := s.fileStore.FilterByIDs(ctx, ownerID, ids)
		if err != nil {
			return model.QueryScope{}, fmt.Errorf("failed to filter files: %w", err)
		}
		scope.Files = files
	}

	return scope, nil
}

// sanitizeIDs drops blank tokens (callers submit delimiter-split lists
// containing empty strings for "nothing selected") and tokens that do
// not parse as UUIDs.
func sanitizeIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		id, err := uuid.Parse(token)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
