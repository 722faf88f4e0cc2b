// Package reqctx carries the operator identity through request contexts.
package reqctx

import (
	"context"

	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/model"
)

type contextKey string

const operatorIDKey contextKey = "operator_id"

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves the operator ID on request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetOperatorIDToContext returns a context carrying the operator ID.
func (m *Manager) SetOperatorIDToContext(ctx context.Context, operatorID uuid.UUID) context.Context {
	return context.WithValue(ctx, operatorIDKey, operatorID)
}

// GetOperatorIDFromContext retrieves the operator ID set by the
// identity middleware.
func (m *Manager) GetOperatorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	operatorID, ok := ctx.Value(operatorIDKey).(uuid.UUID)
	return operatorID, ok
}
