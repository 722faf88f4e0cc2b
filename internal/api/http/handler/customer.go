// Package handler exposes the service layer over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
	"github.com/telemark/telemark-server/internal/service"
	"github.com/telemark/telemark-server/internal/spreadsheet"
)

const maxImportMemory = 32 << 20

// ImportService consumes parsed spreadsheet batches.
type ImportService interface {
	Import(ctx context.Context, ownerID uuid.UUID, batch model.ImportBatch) (model.ImportResult, error)
}

// CustomerService lists, edits and deletes stored customers.
type CustomerService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Customer, error)
	Update(ctx context.Context, params service.UpdateCustomerParams) (model.Customer, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Customer handles customer import and management routes.
type Customer struct {
	importer   ImportService
	customers  CustomerService
	ctxManager model.ContextManager
	logger     *logger.Logger
}

// NewCustomer creates a Customer handler.
func NewCustomer(
	importer ImportService,
	customers CustomerService,
	ctxManager model.ContextManager,
	logger *logger.Logger,
) *Customer {
	return &Customer{
		importer:   importer,
		customers:  customers,
		ctxManager: ctxManager,
		logger:     logger,
	}
}

// Register mounts the customer routes on the router.
func (h *Customer) Register(r chi.Router) {
	r.Post("/customers/import", h.importCustomers)
	r.Get("/customers", h.list)
	r.Put("/customers/{id}", h.update)
	r.Delete("/customers/{id}", h.delete)
}

type importResponse struct {
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Goal    string `json:"goal"`
}

func (h *Customer) importCustomers(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "spreadsheet file is required"})
		return
	}
	defer file.Close()

	rows, err := spreadsheet.Parse(header.Filename, file)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	batch := model.ImportBatch{
		Rows: rows,
		Goal: r.FormValue("tmgoal"),
	}

	result, err := h.importer.Import(r.Context(), ownerID, batch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Created: result.Created,
		Skipped: result.Skipped,
		Goal:    result.Goal,
	})
}

func (h *Customer) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	customers, err := h.customers.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponses(customers))
}

type updateCustomerRequest struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Gender   string `json:"gender"`
}

func (h *Customer) update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed customer id"})
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed request body"})
		return
	}

	updated, err := h.customers.Update(r.Context(), service.UpdateCustomerParams{
		ID:       id,
		OwnerID:  ownerID,
		Name:     req.Name,
		Number:   req.Number,
		Email:    req.Email,
		Location: req.Location,
		Gender:   req.Gender,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(updated))
}

func (h *Customer) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ctxManager.GetOperatorIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "operator identity required"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "malformed customer id"})
		return
	}

	if err := h.customers.Delete(r.Context(), ownerID, id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
