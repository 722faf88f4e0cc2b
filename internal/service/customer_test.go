package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telemark/telemark-server/internal/model"
	"github.com/telemark/telemark-server/internal/testutil"
)

func TestCustomer_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	customerID := uuid.New()

	t.Run("normalizes gender on edit", func(t *testing.T) {
		store := &MockCustomerStore{}
		store.On("Update", ctx, mock.MatchedBy(func(c model.Customer) bool {
			return c.ID == customerID && c.Gender == model.GenderFemale
		})).Return(model.Customer{ID: customerID, Gender: model.GenderFemale}, nil)

		svc := NewCustomer(store, testutil.MakeNoopLogger())
		updated, err := svc.Update(ctx, UpdateCustomerParams{
			ID:       customerID,
			OwnerID:  ownerID,
			Name:     "kim",
			Number:   "010-1234-5678",
			Email:    "kim@example.com",
			Location: "Busan",
			Gender:   "여자",
		})

		require.NoError(t, err)
		assert.Equal(t, model.GenderFemale, updated.Gender)
	})

	t.Run("missing customer surfaces not found", func(t *testing.T) {
		store := &MockCustomerStore{}
		store.On("Update", ctx, mock.Anything).Return(model.Customer{}, model.ErrNotFound)

		svc := NewCustomer(store, testutil.MakeNoopLogger())
		_, err := svc.Update(ctx, UpdateCustomerParams{ID: customerID, OwnerID: ownerID})

		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCustomer_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	customerID := uuid.New()

	t.Run("deletes owned customer", func(t *testing.T) {
		store := &MockCustomerStore{}
		store.On("Delete", ctx, ownerID, customerID).Return(nil)

		svc := NewCustomer(store, testutil.MakeNoopLogger())
		require.NoError(t, svc.Delete(ctx, ownerID, customerID))
	})

	t.Run("missing customer surfaces not found", func(t *testing.T) {
		store := &MockCustomerStore{}
		store.On("Delete", ctx, ownerID, customerID).Return(model.ErrNotFound)

		svc := NewCustomer(store, testutil.MakeNoopLogger())
		assert.ErrorIs(t, svc.Delete(ctx, ownerID, customerID), model.ErrNotFound)
	})
}
