package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jornada-app/backend/internal/domain"
)

// errorBody is the JSON envelope for every non-2xx response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps a domain error to an HTTP status and writes the JSON
// envelope. Unrecognized errors become an opaque 500; the real error is
// logged, never leaked to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
		return
	}

	respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: clientMessage(err)}})
}

// clientMessage strips the internal call-site prefixes ("service.X.Y: ...")
// from a wrapped domain error, keeping only the human-readable tail that
// starts at the sentinel text.
func clientMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrConflict.Error(),
		domain.ErrNotFound.Error(),
	} {
		if i := strings.Index(msg, sentinel); i >= 0 {
			return msg[i:]
		}
	}
	return msg
}

// respondValidation writes a 422 for request-shape problems caught before the
// service layer (malformed JSON, missing fields).
func respondValidation(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorBody{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// respondJSON writes v as the response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON strictly decodes the request body into dst.
// Unknown fields are rejected so client typos fail loudly instead of being
// silently dropped.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}
