// Package types provides type definitions for structured data used throughout the career-recommender system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Budget is the learner's spending preference for course material
type Budget string

// Budget values accepted in a profile
const (
	BudgetFree Budget = "free"
	BudgetLow  Budget = "low"
	BudgetAny  Budget = "any"
)

// Language is the preferred output language of a profile
type Language string

// Language values accepted in a profile
const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// UserProfile is the free-text skill and interest profile submitted by a user.
// It is owned by the caller and must not be mutated by the pipeline.
type UserProfile struct {
	Name       string   `json:"name" validate:"required,min=1,max=120"`
	Education  string   `json:"education" validate:"required,min=1,max=200"`
	Skills     []string `json:"skills" validate:"required,min=1,max=50,dive,required,max=80"`
	Interests  []string `json:"interests" validate:"required,min=1,max=20,dive,required,max=80"`
	WeeklyTime int      `json:"weeklyTime" validate:"required,min=1,max=40"`
	Budget     Budget   `json:"budget" validate:"required,oneof=free low any"`
	Language   Language `json:"language" validate:"required,oneof=en hi"`
}

// Validate validates the UserProfile using the validator.
func (p *UserProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
