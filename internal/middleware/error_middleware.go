package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradtracker/internal/app/models/dto"
	"github.com/yigit/gradtracker/internal/pkg/apperrors"
)

// APIError pairs an HTTP status with the error payload sent to the client
type APIError struct {
	Status int
	Detail *dto.ErrorDetail
}

// RespondError aborts the request with the given error payload
func RespondError(c *gin.Context, apiErr APIError) {
	c.AbortWithStatusJSON(apiErr.Status, dto.NewErrorResponse(apiErr.Detail))
}

// ErrPayloadTooLarge is the response for bodies above the configured limit
func ErrPayloadTooLarge(limit int64) APIError {
	return APIError{
		Status: http.StatusRequestEntityTooLarge,
		Detail: dto.NewErrorDetail(dto.ErrorCodePayloadTooLarge,
			fmt.Sprintf("Request body exceeds %d bytes", limit)),
	}
}

// --- Central Error Handling ---

// HandleAPIError maps service and repository errors onto API responses.
// Unexpected errors are attached to the gin context so the request logger
// records them; the client only sees a generic message.
func HandleAPIError(c *gin.Context, err error) {
	apiErr := MapError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	RespondError(c, apiErr)
}

// MapError translates an error into its API representation
func MapError(err error) APIError {
	if fe, ok := apperrors.AsFieldError(err); ok {
		return APIError{
			Status: http.StatusBadRequest,
			Detail: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, fe.Message).WithField(fe.Field),
		}
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return ErrPayloadTooLarge(maxBytesErr.Limit)
	}

	switch {
	case apperrors.Is(err, apperrors.ErrGraduateNotFound, apperrors.ErrResourceNotFound):
		return APIError{
			Status: http.StatusNotFound,
			Detail: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, customMessage(err, "Graduate record not found")),
		}
	case errors.Is(err, apperrors.ErrGraduateNameExists):
		return APIError{
			Status: http.StatusConflict,
			Detail: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "A graduate with this name is already registered").
				WithField("name"),
		}
	case errors.Is(err, apperrors.ErrConflict):
		return APIError{
			Status: http.StatusConflict,
			Detail: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, customMessage(err, "Resource already exists")),
		}
	case errors.Is(err, apperrors.ErrValidationFailed):
		return APIError{
			Status: http.StatusBadRequest,
			Detail: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, customMessage(err, "Validation failed")),
		}
	case errors.Is(err, apperrors.ErrBadRequest):
		return APIError{
			Status: http.StatusBadRequest,
			Detail: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, customMessage(err, "Invalid request")),
		}
	case errors.Is(err, apperrors.ErrRateLimited):
		return APIError{
			Status: http.StatusTooManyRequests,
			Detail: dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many requests, please try again later").
				WithSeverity(dto.ErrorSeverityWarning),
		}
	default:
		return APIError{
			Status: http.StatusInternalServerError,
			Detail: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
				WithSeverity(dto.ErrorSeverityCritical),
		}
	}
}

// customMessage prefers the message of an apperrors.CustomError
func customMessage(err error, fallback string) string {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// MethodNotAllowed answers requests whose path exists under another method
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondError(c, APIError{
			Status: http.StatusMethodNotAllowed,
			Detail: dto.NewErrorDetail(dto.ErrorCodeMethodNotAllowed,
				fmt.Sprintf("Method %s is not allowed on %s", c.Request.Method, c.Request.URL.Path)),
		})
	}
}

// NoRoute answers requests for unknown paths
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondError(c, APIError{
			Status: http.StatusNotFound,
			Detail: dto.NewErrorDetail(dto.ErrorCodeRouteNotFound, "Route not found"),
		})
	}
}
