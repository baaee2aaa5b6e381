// Package types provides type definitions for structured data used throughout the career-recommender system.
package types

// PlanWeeks is the fixed number of weeks in a learning plan
const PlanWeeks = 4

// WeekPlan is one week of a learning plan
type WeekPlan struct {
	Week       int      `json:"week"`
	Topics     []string `json:"topics"`
	Practice   []string `json:"practice"`
	Assessment string   `json:"assessment"`
	Project    string   `json:"project"`
}

// Plan is a 4-week learning plan
type Plan struct {
	Weeks []WeekPlan `json:"weeks"`
}

// PlanSource records which generation stage produced a plan
type PlanSource string

// Plan sources in escalation order
const (
	PlanSourceStandard PlanSource = "standard"
	PlanSourceStrict   PlanSource = "strict"
	PlanSourceFallback PlanSource = "fallback"
)

// WhySource records how an explanation was produced
type WhySource string

// Explanation sources
const (
	WhySourceLLM      WhySource = "llm"
	WhySourceTemplate WhySource = "template"
)
