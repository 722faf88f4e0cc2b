package reqctx

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()
	operatorID := uuid.New()

	ctx := m.SetOperatorIDToContext(context.Background(), operatorID)
	got, ok := m.GetOperatorIDFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, operatorID, got)
}

func TestManager_MissingOperator(t *testing.T) {
	m := NewManager()

	got, ok := m.GetOperatorIDFromContext(context.Background())

	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, got)
}
