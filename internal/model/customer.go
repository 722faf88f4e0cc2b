package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CustomerStore defines persistence operations for customers.
type CustomerStore interface {
	Create(ctx context.Context, customer Customer) (Customer, error)
	FindByIdentity(ctx context.Context, ownerID uuid.UUID, name, number, email string) (Customer, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Customer, error)
	FilterByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]Customer, error)
	Update(ctx context.Context, customer Customer) (Customer, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Customer represents an imported customer record.
// The birth date is stored only in masked form; the unmasked date exists
// transiently during import to derive the age.
type Customer struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Number          string
	Email           string
	Location        string
	Gender          Gender
	MaskedBirthDate *string
	Age             *int
	CreatedAt       time.Time
}

// Gender is the canonical gender value of a customer.
type Gender string

const (
	// GenderMale is the canonical male value.
	GenderMale Gender = "male"
	// GenderFemale is the canonical female value.
	GenderFemale Gender = "female"
	// GenderUnknown is used for any token outside the known sets.
	GenderUnknown Gender = "unknown"
)
