package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput flags a malformed or missing argument caught before
	// any store access.
	ErrInvalidInput = errors.New("the given input was null or empty")

	// ErrNotFound flags a lookup that resolved to no record.
	ErrNotFound = errors.New("no record was found with the given id")

	// ErrDuplicateKey surfaces a store-level uniqueness violation.
	ErrDuplicateKey = errors.New("a record with this key already exists")

	// ErrUnsupportedPrincipal flags a principal that matches no known
	// provider variant. Treated as a caller configuration error.
	ErrUnsupportedPrincipal = errors.New("the given principal is not from a supported provider")
)

// ValidationError reports field-level constraint violations on an entity.
type ValidationError struct {
	Violations []FieldViolation
}

type FieldViolation struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "the given entity is not valid"
	}

	fields := make([]string, 0, len(e.Violations))

	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}

	return "the given entity is not valid: " + strings.Join(fields, ", ")
}

// MissingAttributeError flags a required attribute absent on an otherwise
// recognized principal.
type MissingAttributeError struct {
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("the principal's %s attribute is missing", e.Attribute)
}

// PersistenceError wraps an unclassified store failure. Error() is
// deliberately generic so driver internals never leak to callers; the
// cause stays reachable through Unwrap for logging.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure during " + e.Op
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
