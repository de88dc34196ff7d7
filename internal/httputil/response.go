// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/t-lanigan/coffee-shop/internal/auth/domain"
	apperrors "github.com/t-lanigan/coffee-shop/internal/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newErrorResponse(statusCode int, code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   statusCode,
		Code:    code,
		Message: message,
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// An authorization failure anywhere in the chain dictates the status, code and message.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var response ErrorResponse
	var authErr *authDomain.AuthError

	switch {
	case apperrors.As(err, &authErr):
		response = newErrorResponse(authErr.StatusCode, authErr.Code, authErr.Description)

	case apperrors.Is(err, apperrors.ErrNotFound):
		response = newErrorResponse(http.StatusNotFound, "not_found", "resource not found")

	case apperrors.Is(err, apperrors.ErrConflict):
		response = newErrorResponse(http.StatusConflict, "conflict", "resource already exists")

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		response = newErrorResponse(http.StatusUnprocessableEntity, "unprocessable", err.Error())

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		response = newErrorResponse(http.StatusUnauthorized, "unauthorized", "authentication is required")

	case apperrors.Is(err, apperrors.ErrForbidden):
		response = newErrorResponse(http.StatusForbidden, "forbidden", "permission not found")

	default:
		// Internal details stay in the logs.
		response = newErrorResponse(http.StatusInternalServerError, "internal_error", "internal server error")
	}

	if logger != nil {
		attrs := []any{
			slog.Int("status_code", response.Error),
			slog.String("error_code", response.Code),
			slog.Any("error", err),
		}
		if response.Error >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Debug("request rejected", attrs...)
		}
	}

	c.JSON(response.Error, response)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "bad_request", "bad request"))
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(
		http.StatusUnprocessableEntity,
		newErrorResponse(http.StatusUnprocessableEntity, "unprocessable", err.Error()),
	)
}

// NotFoundGin answers unknown routes with the standard error body.
func NotFoundGin(c *gin.Context) {
	c.JSON(http.StatusNotFound, newErrorResponse(http.StatusNotFound, "not_found", "resource not found"))
}

// MethodNotAllowedGin answers known routes requested with an unsupported method.
func MethodNotAllowedGin(c *gin.Context) {
	c.JSON(
		http.StatusMethodNotAllowed,
		newErrorResponse(http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed"),
	)
}
