package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonathan/resuexpress/internal/document"
	"github.com/jonathan/resuexpress/internal/export"
	"github.com/jonathan/resuexpress/internal/navigation"
	"github.com/jonathan/resuexpress/internal/wizard"
)

// Error codes carried in the "error" member of error responses.
const (
	CodeValidationFailed = "validation_failed"
	CodeOutOfRange       = "out_of_range"
	CodeBadRequest       = "bad_request"
	CodeUnavailable      = "unavailable"
	CodeRateLimited      = "rate_limit_exceeded"
	CodeExportFailed     = "export_failed"
	CodeInternal         = "internal_error"
)

// RequestError indicates a malformed request body or path parameter
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s - %s", e.Field, e.Message)
}

type errorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Notice  string   `json:"notice,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation   *navigation.ValidationError
		precondition *document.PreconditionError
		request      *RequestError
		pdf          *export.PDFError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, navigation.ErrOutOfRange):
		return http.StatusConflict
	case errors.As(err, &request),
		errors.As(err, &precondition),
		errors.Is(err, navigation.ErrInvalidDirection),
		errors.Is(err, document.ErrUnknownSection),
		errors.Is(err, document.ErrNotScalar),
		errors.Is(err, wizard.ErrUnknownTemplate):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.As(err, &pdf):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorCode names the failure class of a status for clients that branch on it.
func errorCode(status int) string {
	switch status {
	case http.StatusUnprocessableEntity:
		return CodeValidationFailed
	case http.StatusConflict:
		return CodeOutOfRange
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	case http.StatusBadGateway:
		return CodeExportFailed
	default:
		return CodeInternal
	}
}

// writeError maps err onto a status and writes it. A rejected step transition also
// carries the notice the user has to acknowledge.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	body := errorBody{Error: errorCode(status), Message: err.Error()}

	var validation *navigation.ValidationError
	if errors.As(err, &validation) {
		body.Notice = validation.Notice
		body.Missing = validation.Missing
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("request_id", RequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	s.jsonResponse(w, status, body)
}
