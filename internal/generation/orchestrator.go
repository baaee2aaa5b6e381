// Package generation turns a scored role into a validated learning plan and explanation.
// Each generative attempt is gated by the schema validator; rejected output escalates
// from the standard prompt to the strict prompt and finally to the deterministic fallback.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/career-recommender/internal/fallback"
	"github.com/jonathan/career-recommender/internal/llm"
	"github.com/jonathan/career-recommender/internal/parsing"
	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/types"
)

// DefaultTimeout bounds a single backend call
const DefaultTimeout = 15 * time.Second

// Stage names one generative attempt
type Stage string

// Generation stages in escalation order
const (
	StageStandard Stage = "standard"
	StageStrict   Stage = "strict"
)

// Attempt pairs a prompt stage with the model tier that serves it
type Attempt struct {
	Stage Stage
	Tier  llm.ModelTier
}

// DefaultStrategy tries the standard prompt on the standard tier, then the
// strict prompt on the advanced tier.
func DefaultStrategy() []Attempt {
	return []Attempt{
		{Stage: StageStandard, Tier: llm.TierStandard},
		{Stage: StageStrict, Tier: llm.TierAdvanced},
	}
}

// Orchestrator runs the per-role generation state machine.
// It is safe for concurrent use when the underlying client is.
type Orchestrator struct {
	client   llm.Client
	strategy []Attempt
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithStrategy replaces the attempt list. An empty list means every plan comes from the fallback.
func WithStrategy(strategy []Attempt) Option {
	return func(o *Orchestrator) {
		o.strategy = append([]Attempt(nil), strategy...)
	}
}

// WithTimeout sets the per-call timeout. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for stage transitions
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator creates an orchestrator. A nil client is valid and makes
// every plan and explanation deterministic.
func NewOrchestrator(client llm.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:   client,
		strategy: DefaultStrategy(),
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GeneratePlan returns an accepted plan for the role and the stage that produced it.
// It never fails: when every attempt is rejected the deterministic plan is returned.
func (o *Orchestrator) GeneratePlan(ctx context.Context, profile *types.UserProfile, scored types.ScoredRole) (types.Plan, types.PlanSource) {
	log := o.logger.With(zap.String("role_id", scored.RoleID))

	if o.client == nil {
		log.Debug("no generative backend, using fallback plan")
		return o.fallbackPlan(profile, scored), types.PlanSourceFallback
	}

	var previous, reason string
	for _, attempt := range o.strategy {
		if ctx.Err() != nil {
			reason = ctx.Err().Error()
			break
		}

		prompt, err := o.planPrompt(attempt.Stage, profile, scored, previous, reason)
		if err != nil {
			reason = err.Error()
			log.Warn("plan prompt unavailable", zap.String("stage", string(attempt.Stage)), zap.String("reason", reason))
			continue
		}

		raw, err := o.call(ctx, attempt.Tier, prompt, true)
		if err != nil {
			reason = err.Error()
			log.Warn("plan attempt failed", zap.String("stage", string(attempt.Stage)), zap.String("reason", reason))
			continue
		}
		previous = raw

		plan, err := parsePlan(raw)
		if err != nil {
			reason = rejectionReason(err)
			log.Warn("plan attempt rejected", zap.String("stage", string(attempt.Stage)), zap.String("reason", reason))
			continue
		}

		log.Info("plan accepted", zap.String("stage", string(attempt.Stage)))
		return plan, planSource(attempt.Stage)
	}

	log.Info("using fallback plan", zap.String("stage", string(types.PlanSourceFallback)), zap.String("reason", reason))
	return o.fallbackPlan(profile, scored), types.PlanSourceFallback
}

// GenerateWhy returns an explanation for the role match. One generative attempt is
// made on the first strategy tier; any failure yields the templated explanation.
func (o *Orchestrator) GenerateWhy(ctx context.Context, profile *types.UserProfile, scored types.ScoredRole) (string, types.WhySource) {
	template := fallback.BuildWhy(scored.Title, scored.OverlapSkills, scored.GapSkills)
	if o.client == nil || len(o.strategy) == 0 {
		return template, types.WhySourceTemplate
	}

	log := o.logger.With(zap.String("role_id", scored.RoleID))

	prompt, err := whyPrompt(profile, scored)
	if err != nil {
		log.Warn("explanation prompt unavailable", zap.Error(err))
		return template, types.WhySourceTemplate
	}

	raw, err := o.call(ctx, o.strategy[0].Tier, prompt, false)
	if err != nil {
		log.Warn("explanation attempt failed", zap.Error(err))
		return template, types.WhySourceTemplate
	}

	why := strings.Join(strings.Fields(raw), " ")
	if n := utf8.RuneCountInString(why); n < schemas.MinWhyLength || n > schemas.MaxWhyLength {
		log.Warn("explanation rejected", zap.Int("length", n))
		return template, types.WhySourceTemplate
	}

	return why, types.WhySourceLLM
}

// call runs one backend request under the per-call timeout
func (o *Orchestrator) call(ctx context.Context, tier llm.ModelTier, prompt string, jsonMode bool) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var (
		raw string
		err error
	)
	if jsonMode {
		raw, err = o.client.GenerateJSON(callCtx, prompt, tier)
	} else {
		raw, err = o.client.GenerateContent(callCtx, prompt, tier)
	}
	if err != nil {
		return "", err
	}
	// Some clients ignore cancellation; treat a late answer as a timeout
	if callCtx.Err() != nil {
		return "", fmt.Errorf("backend call exceeded %s: %w", o.timeout, callCtx.Err())
	}
	if strings.TrimSpace(raw) == "" {
		return "", &llm.BackendError{Model: o.client.GetModel(tier), Message: "unusable response", Cause: llm.ErrEmptyResponse}
	}
	return raw, nil
}

func (o *Orchestrator) fallbackPlan(profile *types.UserProfile, scored types.ScoredRole) types.Plan {
	return fallback.BuildPlan(scored.Title, scored.GapSkills, profile)
}

// parsePlan cleans and gates raw backend output
func parsePlan(raw string) (types.Plan, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return types.Plan{}, &parsing.ParseError{Message: "backend output contains no JSON object"}
	}
	return schemas.ValidatePlanJSON([]byte(cleaned))
}

func rejectionReason(err error) string {
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason()
	}
	return err.Error()
}

func planSource(stage Stage) types.PlanSource {
	if stage == StageStrict {
		return types.PlanSourceStrict
	}
	return types.PlanSourceStandard
}
