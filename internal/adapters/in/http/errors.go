package http

import (
	"errors"
	"net/http"

	"waterdelivery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StatusFor maps the error taxonomy to an HTTP status.
func StatusFor(err error) int {
	var httpErr *echo.HTTPError
	var bindErr *echo.BindingError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &bindErr):
		return bindErr.Code
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &validationErrs), errs.IsValidation(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsStateConflict(err), errs.IsResourceConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError is installed as echo's HTTPErrorHandler. Handlers return domain
// errors unchanged and the mapping happens here only.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := StatusFor(err)
	body := ErrorResponse{Code: status, Message: err.Error()}

	var httpErr *echo.HTTPError
	var bindErr *echo.BindingError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &bindErr):
		body.Message = "invalid value for query parameter " + bindErr.Field
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		} else {
			body.Message = http.StatusText(httpErr.Code)
		}
	case errors.As(err, &validationErrs):
		body.Message = "request validation failed"
		for _, fe := range validationErrs {
			body.Details = append(body.Details, FieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
	case status == http.StatusInternalServerError:
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		body.Message = http.StatusText(http.StatusInternalServerError)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		s.logger.Warn("failed to write error response", zap.Error(writeErr))
	}
}
