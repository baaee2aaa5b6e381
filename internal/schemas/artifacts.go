package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/career-recommender/internal/types"
	schemafiles "github.com/jonathan/career-recommender/schemas"
)

// Field limits shared with prompt construction
const (
	MaxTopics      = 10
	MaxPractice    = 8
	MaxTextLength  = 200
	MinWhyLength   = 10
	MaxWhyLength   = 600
	MaxSkillsShown = 20
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// compiledSchema loads and caches an embedded schema by file name
func compiledSchema(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	data, err := schemafiles.Read(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "embedded schema not found", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}

	compiled[name] = schema
	return schema, nil
}

// validateDocument runs a schema check over a JSON document
func validateDocument(name string, document []byte, prefix string) error {
	schema, err := compiledSchema(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		// Document is not parseable JSON
		return &ValidationError{Errors: []FieldError{{Field: joinField(prefix, ""), Message: fmt.Sprintf("invalid JSON: %v", err)}}}
	}
	return resultError(result, prefix)
}

// ValidatePlanJSON checks a raw plan document and decodes it on success.
// The week numbers must form exactly the set {1,2,3,4}.
func ValidatePlanJSON(data []byte) (types.Plan, error) {
	return validatePlanJSON(data, "")
}

func validatePlanJSON(data []byte, prefix string) (types.Plan, error) {
	var plan types.Plan

	if err := validateDocument(schemafiles.Plan, data, prefix); err != nil {
		return plan, err
	}

	if err := json.Unmarshal(data, &plan); err != nil {
		return plan, &ValidationError{Errors: []FieldError{{Field: joinField(prefix, ""), Message: fmt.Sprintf("cannot decode plan: %v", err)}}}
	}

	if err := checkWeekSet(plan, prefix); err != nil {
		return types.Plan{}, err
	}

	return plan, nil
}

// checkWeekSet verifies every week number is used exactly once
func checkWeekSet(plan types.Plan, prefix string) error {
	verr := &ValidationError{}
	seen := make(map[int]int, types.PlanWeeks)

	for i, week := range plan.Weeks {
		field := joinField(prefix, fmt.Sprintf("weeks.%d.week", i))
		if first, dup := seen[week.Week]; dup {
			verr.add(field, fmt.Sprintf("week %d already used by weeks.%d", week.Week, first))
			continue
		}
		seen[week.Week] = i

		for j, topic := range week.Topics {
			if strings.TrimSpace(topic) == "" {
				verr.add(joinField(prefix, fmt.Sprintf("weeks.%d.topics.%d", i, j)), "must not be blank")
			}
		}
		for j, item := range week.Practice {
			if strings.TrimSpace(item) == "" {
				verr.add(joinField(prefix, fmt.Sprintf("weeks.%d.practice.%d", i, j)), "must not be blank")
			}
		}
	}

	for n := 1; n <= types.PlanWeeks; n++ {
		if _, ok := seen[n]; !ok {
			verr.add(joinField(prefix, "weeks"), fmt.Sprintf("missing week %d", n))
		}
	}

	return verr.orNil()
}

// ValidatePlan checks an in-memory plan against the same rules as ValidatePlanJSON
func ValidatePlan(plan types.Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	_, err = ValidatePlanJSON(data)
	return err
}

// ValidateRecommendation checks a full recommendation including its plan
func ValidateRecommendation(rec types.Recommendation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}
	return ValidateRecommendationJSON(data)
}

// ValidateRecommendationJSON checks a raw recommendation document
func ValidateRecommendationJSON(data []byte) error {
	return validateRecommendationJSON(data, "")
}

func validateRecommendationJSON(data []byte, prefix string) error {
	if err := validateDocument(schemafiles.Recommendation, data, prefix); err != nil {
		return err
	}

	var envelope struct {
		Title string          `json:"title"`
		Why   string          `json:"why"`
		Plan  json.RawMessage `json:"plan"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: joinField(prefix, ""), Message: fmt.Sprintf("cannot decode recommendation: %v", err)}}}
	}

	verr := &ValidationError{}
	if strings.TrimSpace(envelope.Title) == "" {
		verr.add(joinField(prefix, "title"), "must not be blank")
	}
	if len(strings.TrimSpace(envelope.Why)) < MinWhyLength {
		verr.add(joinField(prefix, "why"), fmt.Sprintf("must be at least %d non-blank characters", MinWhyLength))
	}
	if _, err := validatePlanJSON(envelope.Plan, joinField(prefix, "plan")); err != nil {
		var planErr *ValidationError
		if !errors.As(err, &planErr) {
			return err
		}
		verr.Errors = append(verr.Errors, planErr.Errors...)
	}

	return verr.orNil()
}

// ValidateRecommendationSet checks the set envelope and every recommendation in it.
// Recommendations must be ranked by descending fit score.
func ValidateRecommendationSet(set types.RecommendationSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation set: %w", err)
	}
	return ValidateRecommendationSetJSON(data)
}

// ValidateRecommendationSetJSON checks a raw recommendation set document
func ValidateRecommendationSetJSON(data []byte) error {
	if err := validateDocument(schemafiles.RecommendationSet, data, ""); err != nil {
		return err
	}

	var envelope struct {
		Recommendations []json.RawMessage `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: fmt.Sprintf("cannot decode recommendation set: %v", err)}}}
	}

	verr := &ValidationError{}
	prevScore := -1.0
	for i, raw := range envelope.Recommendations {
		prefix := fmt.Sprintf("recommendations.%d", i)
		if err := validateRecommendationJSON(raw, prefix); err != nil {
			var recErr *ValidationError
			if !errors.As(err, &recErr) {
				return err
			}
			verr.Errors = append(verr.Errors, recErr.Errors...)
			continue
		}

		var scored struct {
			FitScore float64 `json:"fitScore"`
		}
		if err := json.Unmarshal(raw, &scored); err == nil {
			if prevScore >= 0 && scored.FitScore > prevScore {
				verr.add(prefix+".fitScore", "recommendations must be ranked by descending fitScore")
			}
			prevScore = scored.FitScore
		}
	}

	return verr.orNil()
}

// ValidateCatalogJSON checks a raw role catalog document
func ValidateCatalogJSON(data []byte) error {
	return validateDocument(schemafiles.Catalog, bytes.TrimSpace(data), "")
}
