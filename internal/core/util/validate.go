package util

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"todoapp/internal/core/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateEntity runs struct-tag validation and converts failures into the
// domain error taxonomy, so services never hand validator internals upward.
func ValidateEntity(s interface{}) error {
	err := validate.Struct(s)

	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)

	if !ok {
		return &domain.PersistenceError{Op: "validate", Err: err}
	}

	violations := make([]domain.FieldViolation, 0, len(fieldErrors))

	for _, fe := range fieldErrors {
		violations = append(violations, domain.FieldViolation{
			Field:   strings.ToLower(fe.Field()),
			Message: violationMessage(fe),
		})
	}

	return &domain.ValidationError{Violations: violations}
}

func violationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}
