package helper

import (
	"errors"
	"net/http"

	. "todoapp/internal/adapter/http/validation"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/model/response"

	"github.com/gin-gonic/gin"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := FormatValidationErrors(err)
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: message,
		},
	}

	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", errors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusNotFound, "NOT_FOUND", errors)
}

// SendDomainError translates the service error taxonomy into a status
// code and error body. Unclassified errors fall through as 500s with a
// generic message so store internals never reach the client.
func SendDomainError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var missingErr *domain.MissingAttributeError
	var persistenceErr *domain.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		fields := make([]response.ValidationError, 0, len(validationErr.Violations))
		for _, v := range validationErr.Violations {
			fields = append(fields, response.ValidationError{
				Field:   v.Field,
				Message: v.Message,
			})
		}
		SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", fields)

	case errors.As(err, &missingErr):
		SendError(c, http.StatusBadRequest, "MISSING_ATTRIBUTE", []response.ValidationError{
			{Field: missingErr.Attribute, Message: missingErr.Error()},
		})

	case errors.Is(err, domain.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, "BAD_REQUEST", []response.ValidationError{
			{Field: "request", Message: err.Error()},
		})

	case errors.Is(err, domain.ErrUnsupportedPrincipal):
		SendError(c, http.StatusBadRequest, "UNSUPPORTED_PRINCIPAL", []response.ValidationError{
			{Field: "principal", Message: err.Error()},
		})

	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, err.Error())

	case errors.Is(err, domain.ErrDuplicateKey):
		SendError(c, http.StatusConflict, "DUPLICATE_KEY", []response.ValidationError{
			{Field: "resource", Message: err.Error()},
		})

	case errors.As(err, &persistenceErr):
		SendInternalError(c, persistenceErr.Error())

	default:
		SendInternalError(c, "Unexpected error")
	}
}
