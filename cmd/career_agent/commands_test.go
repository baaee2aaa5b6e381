package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-recommender/internal/fallback"
	"github.com/jonathan/career-recommender/internal/types"
)

const testProfileJSON = `{
	"name": "Asha",
	"education": "B.Sc. Computer Science",
	"skills": ["JavaScript", "HTML", "CSS"],
	"interests": ["web"],
	"weeklyTime": 8,
	"budget": "free",
	"language": "en"
}`

// resetFlags restores every subcommand flag to its default between in-process runs
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns stdout and the error
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRecommendCommand_WritesValidatedSet(t *testing.T) {
	dir := t.TempDir()
	profilePath := writeFile(t, dir, "profile.json", testProfileJSON)
	outPath := filepath.Join(dir, "out", "recommendations.json")

	stdout, err := execute(t, "recommend", "--profile", profilePath, "--out", outPath, "--offline")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully wrote 3 recommendations")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var set types.RecommendationSet
	require.NoError(t, json.Unmarshal(content, &set))
	require.Len(t, set.Recommendations, 3)
	assert.Equal(t, "frontend-developer", set.Recommendations[0].RoleID)
	assert.Equal(t, 70, set.Recommendations[0].FitScore)
	assert.Equal(t, types.PlanSourceFallback, set.Recommendations[0].Source.Plan)
}

func TestRecommendCommand_Stdout(t *testing.T) {
	dir := t.TempDir()
	profilePath := writeFile(t, dir, "profile.json", testProfileJSON)

	stdout, err := execute(t, "recommend", "-p", profilePath, "--offline", "-k", "1")
	require.NoError(t, err)

	var set types.RecommendationSet
	require.NoError(t, json.Unmarshal([]byte(stdout), &set))
	assert.Len(t, set.Recommendations, 1)
}

func TestRecommendCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	profilePath := writeFile(t, dir, "profile.json", testProfileJSON)
	outPath := filepath.Join(dir, "set.json")
	configPath := writeFile(t, dir, "config.json", `{"profile": "`+profilePath+`", "output": "`+outPath+`", "top_k": 2}`)

	_, err := execute(t, "recommend", "--config", configPath, "--offline")
	require.NoError(t, err)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var set types.RecommendationSet
	require.NoError(t, json.Unmarshal(content, &set))
	assert.Len(t, set.Recommendations, 2)
}

func TestRecommendCommand_MissingProfile(t *testing.T) {
	_, err := execute(t, "recommend", "--offline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--profile is required")
}

func TestRecommendCommand_InvalidProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := writeFile(t, dir, "profile.json", `{"name": "Asha", "skills": []}`)

	_, err := execute(t, "recommend", "--profile", profilePath, "--offline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
}

func TestRecommendCommand_EmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	profilePath := writeFile(t, dir, "profile.json", testProfileJSON)
	catalogPath := writeFile(t, dir, "catalog.json", `{"roles": []}`)

	_, err := execute(t, "recommend", "--profile", profilePath, "--catalog", catalogPath, "--offline")
	assert.Error(t, err)
}

func TestRankRolesCommand(t *testing.T) {
	dir := t.TempDir()
	profilePath := writeFile(t, dir, "profile.json", testProfileJSON)

	stdout, err := execute(t, "rank-roles", "--profile", profilePath)
	require.NoError(t, err)

	var ranked []types.ScoredRole
	require.NoError(t, json.Unmarshal([]byte(stdout), &ranked))
	require.Len(t, ranked, 12)
	assert.Equal(t, "frontend-developer", ranked[0].RoleID)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankRolesCommand_TopK(t *testing.T) {
	dir := t.TempDir()
	profilePath := writeFile(t, dir, "profile.json", testProfileJSON)

	stdout, err := execute(t, "rank-roles", "--profile", profilePath, "--top-k", "2")
	require.NoError(t, err)

	var ranked []types.ScoredRole
	require.NoError(t, json.Unmarshal([]byte(stdout), &ranked))
	assert.Len(t, ranked, 2)

	_, err = execute(t, "rank-roles", "--profile", profilePath, "--top-k", "-1")
	assert.Error(t, err)
}

func TestRankRolesCommand_MissingProfileFlag(t *testing.T) {
	_, err := execute(t, "rank-roles")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestFallbackPlanCommand(t *testing.T) {
	stdout, err := execute(t, "fallback-plan", "--title", "Frontend Developer", "--gaps", "React, typescript, react")
	require.NoError(t, err)

	var plan types.Plan
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))
	require.Len(t, plan.Weeks, 4)
	assert.Contains(t, plan.Weeks[0].Topics[0], "focus: React")
	assert.Contains(t, plan.Weeks[1].Topics[0], "focus: typescript")
	assert.Equal(t, fallback.BuildPlan("Frontend Developer", []string{"React", "typescript"}, nil), plan)
}

func TestFallbackPlanCommand_MissingTitle(t *testing.T) {
	_, err := execute(t, "fallback-plan")
	assert.Error(t, err)
}

func TestSplitGaps(t *testing.T) {
	assert.Nil(t, splitGaps(""))
	assert.Equal(t, []string{"React", "Type Script"}, splitGaps(" React ,, Type   Script, react "))
	assert.Equal(t, []string{"js"}, splitGaps("js, JavaScript"))
}

func TestValidatePlanCommand(t *testing.T) {
	dir := t.TempDir()
	plan := fallback.BuildPlan("Data Analyst", []string{"SQL"}, nil)
	content, err := json.Marshal(plan)
	require.NoError(t, err)
	validPath := writeFile(t, dir, "plan.json", string(content))

	stdout, err := execute(t, "validate-plan", "--plan", validPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")

	plan.Weeks = plan.Weeks[:3]
	content, err = json.Marshal(plan)
	require.NoError(t, err)
	invalidPath := writeFile(t, dir, "short.json", string(content))

	stdout, err = execute(t, "validate-plan", "--plan", invalidPath)
	require.Error(t, err)
	assert.Contains(t, stdout, "Validation failed")
	assert.Contains(t, stdout, "weeks")
}

func TestValidatePlanCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "validate-plan", "--plan", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestListRolesCommand(t *testing.T) {
	stdout, err := execute(t, "list-roles")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ROLE ID")
	assert.Contains(t, stdout, "frontend-developer")
	assert.Contains(t, stdout, "Frontend Developer")
}

func TestListRolesCommand_JSON(t *testing.T) {
	stdout, err := execute(t, "list-roles", "--json")
	require.NoError(t, err)

	var roles []types.RoleDefinition
	require.NoError(t, json.Unmarshal([]byte(stdout), &roles))
	assert.Len(t, roles, 12)
}

func TestListRolesCommand_CustomCatalog(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.yaml", `roles:
  - roleId: barista
    title: Barista
    description: Prepares coffee drinks
    skills:
      - name: Espresso
`)

	stdout, err := execute(t, "list-roles", "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "barista")
	assert.NotContains(t, stdout, "frontend-developer")
}
