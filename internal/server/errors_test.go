package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-recommender/internal/ranking"
	"github.com/jonathan/career-recommender/internal/store"
	"github.com/jonathan/career-recommender/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "limit", Message: "must be positive"}
	assert.Equal(t, "validation error: limit - must be positive", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "validation", err: &ErrValidation{Field: "skills"}, expected: http.StatusBadRequest},
		{name: "empty catalog", err: &ranking.EmptyCatalogError{}, expected: http.StatusUnprocessableEntity},
		{name: "wrapped empty catalog", err: fmt.Errorf("recommend: %w", &ranking.EmptyCatalogError{}), expected: http.StatusUnprocessableEntity},
		{name: "not found", err: &store.NotFoundError{ID: uuid.New()}, expected: http.StatusNotFound},
		{name: "storage", err: &store.StorageError{Op: "save", Message: "down"}, expected: http.StatusInternalServerError},
		{name: "generic", err: fmt.Errorf("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestProfileValidationError(t *testing.T) {
	profile := types.UserProfile{
		Name:       "Asha",
		Education:  "B.Sc.",
		Skills:     []string{"go"},
		Interests:  []string{"web"},
		WeeklyTime: 99,
		Budget:     types.BudgetFree,
		Language:   types.LanguageEnglish,
	}
	err := profile.Validate()
	require.Error(t, err)

	converted := profileValidationError(err)
	var validationErr *ErrValidation
	require.ErrorAs(t, converted, &validationErr)
	assert.Equal(t, "UserProfile.WeeklyTime", validationErr.Field)
	assert.Contains(t, validationErr.Message, "max")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(converted))
}

func TestProfileValidationError_NonValidatorError(t *testing.T) {
	converted := profileValidationError(&validator.InvalidValidationError{})
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(converted))
}
