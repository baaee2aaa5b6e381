// Package pipeline provides the high-level orchestration for producing career recommendations.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-recommender/internal/generation"
	"github.com/jonathan/career-recommender/internal/llm"
	"github.com/jonathan/career-recommender/internal/ranking"
	"github.com/jonathan/career-recommender/internal/types"
)

// Progress steps emitted by Recommend
const (
	StepRoleRanked    = "role_ranked"
	StepRoleCompleted = "role_completed"
	StepComplete      = "complete"
)

// Progress categories
const (
	CategoryRanking    = "ranking"
	CategoryGeneration = "generation"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RoleID   string `json:"role_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
// Calls are serialized, so the callback needs no locking of its own.
type ProgressCallback func(event ProgressEvent)

// RecommendOptions holds configuration for a Recommend call
type RecommendOptions struct {
	// Client is the generative backend. Nil makes every plan and explanation deterministic.
	Client llm.Client
	// Strategy overrides the default standard-then-strict attempt list
	Strategy []generation.Attempt
	// Timeout bounds each backend call (default generation.DefaultTimeout)
	Timeout time.Duration
	// TopK is the number of roles to recommend (default ranking.DefaultTopK)
	TopK       int
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// progress serializes callback invocations from concurrent role workers
type progress struct {
	mu sync.Mutex
	cb ProgressCallback
}

// emitProgress calls the progress callback if configured
func (p *progress) emitProgress(step, category, roleID, message string, content any) {
	if p.cb == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cb(ProgressEvent{
		Step:     step,
		Category: category,
		Message:  message,
		RoleID:   roleID,
		Content:  content,
	})
}

// Recommend ranks the catalog against the profile and builds one recommendation
// per selected role. The only error is *ranking.EmptyCatalogError; generation
// failures degrade to deterministic output instead of failing the call.
// The profile and catalog are read-only.
func Recommend(ctx context.Context, profile *types.UserProfile, catalog []types.RoleDefinition, opts RecommendOptions) (*types.RecommendationSet, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = ranking.DefaultTopK
	}
	events := &progress{cb: opts.OnProgress}

	ranked, err := ranking.RankRoles(profile, catalog, topK)
	if err != nil {
		return nil, err
	}

	for i, scored := range ranked {
		events.emitProgress(StepRoleRanked, CategoryRanking, scored.RoleID,
			fmt.Sprintf("Ranked #%d %s (fit %d)", i+1, scored.Title, scored.Score), scored)
	}
	logger.Info("roles ranked", zap.Int("catalog_size", len(catalog)), zap.Strings("role_ids", roleIDs(ranked)))

	orchOpts := []generation.Option{
		generation.WithTimeout(opts.Timeout),
		generation.WithLogger(logger),
	}
	if opts.Strategy != nil {
		orchOpts = append(orchOpts, generation.WithStrategy(opts.Strategy))
	}
	orch := generation.NewOrchestrator(opts.Client, orchOpts...)

	// One worker per role; each writes only its own slot
	recommendations := make([]types.Recommendation, len(ranked))
	g, gCtx := errgroup.WithContext(ctx)
	for i := range ranked {
		g.Go(func() error {
			rec := buildRecommendation(gCtx, orch, profile, ranked[i])
			recommendations[i] = rec
			events.emitProgress(StepRoleCompleted, CategoryGeneration, rec.RoleID,
				fmt.Sprintf("Completed %s (plan: %s, why: %s)", rec.Title, rec.Source.Plan, rec.Source.Why), rec)
			return nil
		})
	}
	// Workers never return errors
	_ = g.Wait()

	set := &types.RecommendationSet{Recommendations: recommendations}
	events.emitProgress(StepComplete, CategoryGeneration, "",
		fmt.Sprintf("Built %d recommendations", len(recommendations)), set)

	return set, nil
}

func buildRecommendation(ctx context.Context, orch *generation.Orchestrator, profile *types.UserProfile, scored types.ScoredRole) types.Recommendation {
	plan, planSource := orch.GeneratePlan(ctx, profile, scored)
	why, whySource := orch.GenerateWhy(ctx, profile, scored)

	return types.Recommendation{
		RoleID:        scored.RoleID,
		Title:         scored.Title,
		FitScore:      scored.Score,
		Why:           why,
		OverlapSkills: scored.OverlapSkills,
		GapSkills:     scored.GapSkills,
		Plan:          plan,
		Source: types.Source{
			Plan: planSource,
			Why:  whySource,
		},
	}
}

func roleIDs(ranked []types.ScoredRole) []string {
	ids := make([]string, 0, len(ranked))
	for _, scored := range ranked {
		ids = append(ids, scored.RoleID)
	}
	return ids
}
