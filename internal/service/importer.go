package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// Importer consumes spreadsheet batches and inserts new customers,
// skipping rows that already exist for the owning operator.
type Importer struct {
	customerStore model.CustomerStore
	logger        *logger.Logger
	now           func() time.Time
}

// NewImporter creates an Importer backed by the given customer store.
func NewImporter(customerStore model.CustomerStore, logger *logger.Logger) *Importer {
	return &Importer{
		customerStore: customerStore,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Import processes batch rows in file order. A row matching an existing
// customer on (owner, name, number, email) is skipped without merging;
// any other row is normalized and inserted with the processing time as
// its creation timestamp.
//
// A row missing a required field aborts the remaining batch with a
// ValidationError. Rows inserted before the failure stay inserted; the
// returned result reflects progress up to that point. There is no
// locking across rows, so concurrent imports for the same owner may
// race between the existence check and the insert.
func (s *Importer) Import(ctx context.Context, ownerID uuid.UUID, batch model.ImportBatch) (model.ImportResult, error) {
	result := model.ImportResult{Goal: batch.Goal}

	for i, row := range batch.Rows {
		if err := validateRow(i, row); err != nil {
			return result, err
		}

		_, err := s.customerStore.FindByIdentity(ctx, ownerID, row.Name, row.Number, row.Email)
		switch {
		case err == nil:
			result.Skipped++
			continue
		case !errors.Is(err, model.ErrNotFound):
			return result, fmt.Errorf("failed to check for existing customer: %w", err)
		}

		now := s.now()
		fields := NormalizeRow(row, now)

		customer := model.Customer{
			ID:              uuid.New(),
			OwnerID:         ownerID,
			Name:            row.Name,
			Number:          row.Number,
			Email:           row.Email,
			Location:        row.Location,
			Gender:          fields.Gender,
			MaskedBirthDate: fields.MaskedBirthDate,
			Age:             fields.Age,
			CreatedAt:       now,
		}

		if _, err := s.customerStore.Create(ctx, customer); err != nil {
			return result, fmt.Errorf("failed to create customer: %w", err)
		}
		result.Created++
	}

	s.logger.Info("import finished",
		"owner_id", ownerID,
		"created", result.Created,
		"skipped", result.Skipped,
		"goal", result.Goal)

	return result, nil
}

func validateRow(index int, row model.ImportRow) error {
	switch {
	case row.Name == "":
		return model.NewValidationError(index, "name")
	case row.Number == "":
		return model.NewValidationError(index, "number")
	case row.Email == "":
		return model.NewValidationError(index, "email")
	case row.Location == "":
		return model.NewValidationError(index, "location")
	}
	return nil
}
