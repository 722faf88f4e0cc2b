package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// OperatorHeader names the trusted header carrying the operator identity.
// Authentication itself happens upstream; this service only requires the
// resolved identity.
const OperatorHeader = "X-Operator-ID"

// Operator extracts the operator identity from the request and stores it
// on the context.
type Operator struct {
	ctxManager model.ContextManager
	logger     *logger.Logger
}

// NewOperator creates a new Operator middleware.
func NewOperator(ctxManager model.ContextManager, logger *logger.Logger) *Operator {
	return &Operator{
		ctxManager: ctxManager,
		logger:     logger,
	}
}

// Handle rejects requests without a valid operator ID and threads the
// identity through the request context otherwise.
func (o *Operator) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operatorID, err := uuid.Parse(r.Header.Get(OperatorHeader))
		if err != nil {
			o.logger.Debug("missing or malformed operator header", "path", r.URL.Path)
			http.Error(w, "operator identity required", http.StatusUnauthorized)
			return
		}

		ctx := o.ctxManager.SetOperatorIDToContext(r.Context(), operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
