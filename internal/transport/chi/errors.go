package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
)

// ErrorCode is the machine-readable error kind in error responses.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeNotFound          ErrorCode = "not_found"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeForbidden         ErrorCode = "forbidden"
	CodeInvalidSubmission ErrorCode = "invalid_submission"
	CodeSpam              ErrorCode = "spam"
	CodeIntegrity         ErrorCode = "integrity_error"
	CodeInternal          ErrorCode = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

type errorResponse struct {
	Success bool      `json:"success"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// validationHandler maps ValidationError to 400 with the offending field.
func validationHandler(w http.ResponseWriter, err error) bool {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    CodeValidationFailed,
			Message: ve.Message,
			Field:   ve.Field,
		})
		return true
	}
	if errors.Is(err, domain.ErrValidation) {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, domain.ErrValidation.Error())
		return true
	}
	return false
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message)
		return true
	}
}

// integrityHandler fails the request without repairing state. The broken
// target is logged, never returned.
func (s *Server) integrityHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrIntegrity) {
		return false
	}
	s.logger.Error("vote ledger integrity violation", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeIntegrity, "vote could not be recorded")
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

// decodeBody reads a bounded JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body")
		return false
	}
	return true
}
