package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// Customer provides listing, editing and deletion of stored customers.
// Records are only ever created through the Importer.
type Customer struct {
	customerStore model.CustomerStore
	logger        *logger.Logger
}

// NewCustomer creates a Customer service over the given store.
func NewCustomer(customerStore model.CustomerStore, logger *logger.Logger) *Customer {
	return &Customer{
		customerStore: customerStore,
		logger:        logger,
	}
}

// List returns the owner's customers, newest first.
func (s *Customer) List(ctx context.Context, ownerID uuid.UUID) ([]model.Customer, error) {
	customers, err := s.customerStore.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers by owner id: %w", err)
	}
	return customers, nil
}

// UpdateCustomerParams contains the editable fields of a customer.
type UpdateCustomerParams struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Number   string
	Email    string
	Location string
	Gender   string
}

// Update edits a customer owned by the caller. The gender passes through
// the same normalization as imported rows; the masked birth date and age
// are import-time derivations and stay untouched.
func (s *Customer) Update(ctx context.Context, params UpdateCustomerParams) (model.Customer, error) {
	customer := model.Customer{
		ID:       params.ID,
		OwnerID:  params.OwnerID,
		Name:     params.Name,
		Number:   params.Number,
		Email:    params.Email,
		Location: params.Location,
		Gender:   NormalizeGender(params.Gender),
	}

	updated, err := s.customerStore.Update(ctx, customer)
	if err != nil {
		return model.Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}
	return updated, nil
}

// Delete removes a customer owned by the caller.
func (s *Customer) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.customerStore.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted", "owner_id", ownerID, "customer_id", id)
	return nil
}
