package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses: malformed input is
// unprocessable, missing entities are not found, and upstream retrieval
// failures are a bad gateway. Everything else stays an opaque 500.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var validationErr *model.ValidationError
	var retrievalErr *model.RetrievalError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: validationErr.Error()})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.As(err, &retrievalErr):
		log.Error("retrieval failed", "stage", retrievalErr.Stage, "error", retrievalErr.Err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: retrievalErr.Error()})
	default:
		log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
