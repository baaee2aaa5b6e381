// Package server provides the HTTP REST API for the career recommender.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-recommender/internal/ranking"
	"github.com/jonathan/career-recommender/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// profileValidationError converts the first validator failure into an ErrValidation
func profileValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		message := fmt.Sprintf("failed %q check", fe.Tag())
		if fe.Param() != "" {
			message = fmt.Sprintf("failed %q check (%s)", fe.Tag(), fe.Param())
		}
		return &ErrValidation{Field: fe.Namespace(), Message: message}
	}
	return &ErrValidation{Field: "profile", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var emptyCatalog *ranking.EmptyCatalogError
	var notFound *store.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &emptyCatalog):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
