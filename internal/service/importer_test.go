package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/telemark/telemark-server/internal/model"
	"github.com/telemark/telemark-server/internal/testutil"
)

// MockCustomerStore mocks the CustomerStore interface.
type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(model.Customer), args.Error(1)
}

func (m *MockCustomerStore) FindByIdentity(ctx context.Context, ownerID uuid.UUID, name, number, email string) (model.Customer, error) {
	args := m.Called(ctx, ownerID, name, number, email)
	return args.Get(0).(model.Customer), args.Error(1)
}

func (m *MockCustomerStore) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Customer, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerStore) FilterByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]model.Customer, error) {
	args := m.Called(ctx, ownerID, ids)
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerStore) Update(ctx context.Context, customer model.Customer) (model.Customer, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(model.Customer), args.Error(1)
}

func (m *MockCustomerStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func validRow(name string) model.ImportRow {
	return model.ImportRow{
		Name:     name,
		Number:   "010-1234-5678",
		Email:    name + "@example.com",
		Location: "Seoul",
	}
}

func TestImporter_Import(t *testing.T) {
	ownerID := uuid.New()
	ctx := context.Background()

	t.Run("creates new customers", func(t *testing.T) {
		store := &MockCustomerStore{}
		store.On("FindByIdentity", ctx, ownerID, mock.Anything, mock.Anything, mock.Anything).
			Return(model.Customer{}, model.ErrNotFound)
		store.On("Create", ctx, mock.MatchedBy(func(c model.Customer) bool {
			return c.OwnerID == ownerID && c.Name != "" && !c.CreatedAt.IsZero()
		})).Return(model.Customer{}, nil)

		importer := NewImporter(store, testutil.MakeNoopLogger())
		result, err := importer.Import(ctx, ownerID, model.ImportBatch{
			Rows: []model.ImportRow{validRow("kim"), validRow("lee")},
			Goal: "spring campaign",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, "spring campaign", result.Goal)
		store.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("skips duplicate of stored customer", func(t *testing.T) {
		row := validRow("kim")
		store := &MockCustomerStore{}
		store.On("FindByIdentity", ctx, ownerID, row.Name, row.Number, row.Email).
			Return(model.Customer{Name: row.Name}, nil)

		importer := NewImporter(store, testutil.MakeNoopLogger())
		result, err := importer.Import(ctx, ownerID, model.ImportBatch{Rows: []model.ImportRow{row}})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Equal(t, 1, result.Skipped)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("three rows with one in-batch duplicate", func(t *testing.T) {
		dup := validRow("kim")
		other := validRow("lee")

		store := &MockCustomerStore{}
		// First occurrence not stored yet; once inserted, the later
		// duplicate resolves against it.
		store.On("FindByIdentity", ctx, ownerID, dup.Name, dup.Number, dup.Email).
			Return(model.Customer{}, model.ErrNotFound).Once()
		store.On("FindByIdentity", ctx, ownerID, dup.Name, dup.Number, dup.Email).
			Return(model.Customer{Name: dup.Name}, nil).Once()
		store.On("FindByIdentity", ctx, ownerID, other.Name, other.Number, other.Email).
			Return(model.Customer{}, model.ErrNotFound)
		store.On("Create", ctx, mock.Anything).Return(model.Customer{}, nil)

		importer := NewImporter(store, testutil.MakeNoopLogger())
		result, err := importer.Import(ctx, ownerID, model.ImportBatch{
			Rows: []model.ImportRow{dup, dup, other},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("malformed row aborts remaining batch", func(t *testing.T) {
		bad := validRow("park")
		bad.Email = ""

		store := &MockCustomerStore{}
		store.On("FindByIdentity", ctx, ownerID, mock.Anything, mock.Anything, mock.Anything).
			Return(model.Customer{}, model.ErrNotFound)
		store.On("Create", ctx, mock.Anything).Return(model.Customer{}, nil)

		importer := NewImporter(store, testutil.MakeNoopLogger())
		result, err := importer.Import(ctx, ownerID, model.ImportBatch{
			Rows: []model.ImportRow{validRow("kim"), bad, validRow("lee")},
		})

		var validationErr *model.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, 1, validationErr.Row)
		assert.Equal(t, "email", validationErr.Field)
		// The row before the failure stays inserted.
		assert.Equal(t, 1, result.Created)
		store.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		store := &MockCustomerStore{}
		store.On("FindByIdentity", ctx, ownerID, mock.Anything, mock.Anything, mock.Anything).
			Return(model.Customer{}, errors.New("connection reset"))

		importer := NewImporter(store, testutil.MakeNoopLogger())
		_, err := importer.Import(ctx, ownerID, model.ImportBatch{Rows: []model.ImportRow{validRow("kim")}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check for existing customer")
	})
}
