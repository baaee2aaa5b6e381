package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	roles := Default()

	require.GreaterOrEqual(t, len(roles), 10)
	assert.Equal(t, "frontend-developer", roles[0].RoleID)
	assert.Equal(t, "Frontend Developer", roles[0].Title)
	require.Len(t, roles[0].Skills, 5)
	for _, skill := range roles[0].Skills {
		assert.Equal(t, 1.0, skill.EffectiveWeight())
	}

	seen := make(map[string]bool)
	for _, role := range roles {
		assert.False(t, seen[role.RoleID], "duplicate role %s", role.RoleID)
		seen[role.RoleID] = true
		assert.NotEmpty(t, role.Skills, role.RoleID)
	}
}

func TestLoad_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "roles.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"roles": [{"roleId": "qa-engineer", "title": "QA Engineer", "skills": [{"name": "Testing", "weight": 2}]}]}`), 0o644))

	yamlPath := filepath.Join(dir, "roles.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("roles:\n  - roleId: qa-engineer\n    title: QA Engineer\n    skills:\n      - name: Testing\n        weight: 2\n"), 0o644))

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	require.Len(t, fromJSON, 1)
	assert.Equal(t, 2.0, fromJSON[0].Skills[0].Weight)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name       string
		path       string
		wantSchema bool
	}{
		{"missing file", filepath.Join(dir, "absent.json"), false},
		{"bad yaml", write("bad.yaml", "roles: [unclosed"), false},
		{"bad json", write("bad.json", "{"), true},
		{"missing roles", write("empty.json", `{}`), true},
		{"bad role id", write("id.json", `{"roles": [{"roleId": "Not Valid", "title": "x", "skills": []}]}`), true},
		{"duplicate id", write("dup.json", `{"roles": [{"roleId": "a", "title": "A", "skills": []}, {"roleId": "a", "title": "B", "skills": []}]}`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.path, loadErr.Path)

			var verr *schemas.ValidationError
			assert.Equal(t, tt.wantSchema, errors.As(err, &verr))
		})
	}
}

func TestFind(t *testing.T) {
	roles := Default()

	role := Find(roles, "data-analyst")
	require.NotNil(t, role)
	assert.Equal(t, "Data Analyst", role.Title)
	assert.Nil(t, Find(roles, "astronaut"))
}
