package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

// SelectionService resolves id lists into the records they designate.
type SelectionService interface {
	Resolve(ctx context.Context, ownerID uuid.UUID, customerIDs, fileIDs []string) (model.QueryScope, error)
}

// QueryService answers questions against the pre-built document index.
type QueryService interface {
	Answer(ctx context.Context, question string, scope model.QueryScope) (model.RetrievalAnswer, error)
}

// Query handles selection preview and question answering routes.
type Query struct {
	selection  SelectionService
	query      QueryService
	ctxManager model.ContextManager
	logger     *logger.Logger
}

// NewQuery creates a Query handler.
func NewQuery(
	selection SelectionService,
	query QueryService,
	ctxManager model.ContextManager,
	logger *logger.Logger,
) *Query {
	return &Query{
		selection:  selection,
		query:      query,
		ctxManager: ctxManager,
		logger:     logger,
	}
}

// Register mounts the query routes on the router.
func (h *Query) Register(r chi.Router) {
	r.Get("/selection", h.preview)
	r.Post("/tm/start", h.start)
}

type selectionResponse struct {
	Customers []customerResponse `json:"customers"`
	Files     []fileResponse     `json:"files"`
}

// preview resolves the comma-separated id lists from the query string so
// the client can show which records a question will be tagged with.
func (h *Query) preview(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	customerIDs := splitIDList(r.URL.Query().Get("customer_ids"))
	fileIDs := splitIDList(r.URL.Query().Get("file_ids"))

	scope, err := h.selection.Resolve(r.Context(), ownerID, customerIDs, fileIDs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, selectionResponse{
		Customers: toCustomerResponses(scope.Customers),
		Files:     toFileResponses(scope.Files),
	})
}

type startRequest struct {
	InputData string   `json:"input_data"`
	ClientIDs []string `json:"client_ids"`
	FileIDs   []string `json:"file_ids"`
}

type startResponse struct {
	Question  string             `json:"question"`
	Answer    string             `json:"answer"`
	Customers []customerResponse `json:"customers"`
	Files     []fileResponse     `json:"files"`
}

func (h *Query) start(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed request body"})
		return
	}

	if strings.TrimSpace(req.InputData) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "input_data is required"})
		return
	}

	scope, err := h.selection.Resolve(r.Context(), ownerID, req.ClientIDs, req.FileIDs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	answer, err := h.query.Answer(r.Context(), req.InputData, scope)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, startResponse{
		Question:  answer.Question,
		Answer:    answer.Answer,
		Customers: toCustomerResponses(answer.Scope.Customers),
		Files:     toFileResponses(answer.Scope.Files),
	})
}

// splitIDList splits a comma-separated list, keeping blank tokens; the
// selection resolver is responsible for discarding them.
func splitIDList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
