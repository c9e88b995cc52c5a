package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

const maxRequestBody = 1 << 20

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse is returned by operations without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func respondUnauthorized(w http.ResponseWriter) {
	respondError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
}

// errorStatus maps service errors to status, code and a client-safe
// message.
func errorStatus(err error) (int, string, string) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, "validation_error", ve.Error()
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "validation_error", "invalid request"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "conflict", err.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid credentials"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "unauthorized", "unauthorized"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "forbidden", "forbidden"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, common.ErrorDependency):
		return http.StatusBadGateway, "bad_gateway", "upstream unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout", "request timed out"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}

// writeError is the single place service errors become HTTP answers.
// Internal detail is logged, never returned.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := errorStatus(err)

	l := logging.FromContext(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		l.Error(r.Context(), "request failed", "status", status, "error", err)
	} else {
		l.Debug(r.Context(), "request rejected", "status", status, "error", err)
	}

	respondError(w, status, code, msg)
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		return common.NewValidationError("body", "invalid JSON")
	}
	return nil
}
