package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFile = "recommend.json"

func TestGet(t *testing.T) {
	Reset()

	template, err := Get(testFile, "standard-plan")
	require.NoError(t, err)
	assert.Contains(t, template, "4-week learning plan")

	cached, err := Get(testFile, "standard-plan")
	require.NoError(t, err)
	assert.Equal(t, template, cached)
}

func TestGet_Errors(t *testing.T) {
	Reset()

	_, err := Get("nonexistent.json", "standard-plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")

	_, err = Get(testFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestKeys(t *testing.T) {
	Reset()

	keys, err := Keys(testFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"explain-fit", "standard-plan", "strict-plan"}, keys)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "fills placeholders",
			template: "Plan for {{.Name}} targeting {{.Role}}",
			data:     map[string]string{"Name": "Asha", "Role": "Data Analyst"},
			expected: "Plan for Asha targeting Data Analyst",
		},
		{
			name:     "repeated placeholder",
			template: "{{.Role}} then {{.Role}}",
			data:     map[string]string{"Role": "UX Designer"},
			expected: "UX Designer then UX Designer",
		},
		{
			name:     "value is not expanded again",
			template: "Previous answer: {{.PreviousOutput}}",
			data:     map[string]string{"PreviousOutput": "{{.Name}}", "Name": "Asha"},
			expected: "Previous answer: {{.Name}}",
		},
		{
			name:     "missing value stays",
			template: "Plan for {{.Name}}",
			data:     map[string]string{},
			expected: "Plan for {{.Name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestMissing(t *testing.T) {
	template := "{{.Skills}} {{.Name}} {{.Skills}} {{.GapSkills}}"
	assert.Equal(t, []string{"GapSkills", "Skills"}, Missing(template, map[string]string{"Name": "Asha"}))
	assert.Empty(t, Missing(template, map[string]string{"Name": "", "Skills": "", "GapSkills": ""}))
}

func TestRender(t *testing.T) {
	Reset()

	_, err := Render(testFile, "explain-fit", map[string]string{"Name": "Asha"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value for")
	assert.Contains(t, err.Error(), "RoleTitle")

	data := map[string]string{
		"Name":          "Asha",
		"RoleTitle":     "Data Analyst",
		"FitScore":      "62",
		"OverlapSkills": "SQL",
		"GapSkills":     "Tableau",
		"Skills":        "sql, excel",
		"Interests":     "finance",
		"MinLength":     "10",
		"MaxLength":     "600",
	}
	prompt, err := Render(testFile, "explain-fit", data)
	require.NoError(t, err)
	assert.NotContains(t, prompt, "{{.")
	assert.Contains(t, prompt, "62 out of 100")
	assert.Contains(t, prompt, "Current skills: sql, excel")
}

func TestEmbeddedTemplatesParse(t *testing.T) {
	Reset()

	keys, err := Keys(testFile)
	require.NoError(t, err)
	for _, key := range keys {
		template, err := Get(testFile, key)
		require.NoError(t, err)
		assert.NotEmpty(t, placeholderPattern.FindAllString(template, -1), key)
	}
}
