package schema

import (
	"testing"
	"time"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
}

func runPipeline(v VariableSpec, raw string) string {
	value := raw
	for _, step := range v.Pipeline() {
		value = step.Apply(value)
	}
	return value
}

func TestDefaultSchemaOrderAndTokens(t *testing.T) {
	s := Default(fixedNow)

	assert.Equal(t, []string{
		"TEMPLATE_VAR_project_name",
		"TEMPLATE_VAR_short_description",
		"TEMPLATE_VAR_author",
		"TEMPLATE_VAR_github",
		"TEMPLATE_VAR_gh_user",
		"TEMPLATE_VAR_year",
	}, s.Tokens())

	var keys []string
	s.ForEach(func(v VariableSpec) { keys = append(keys, v.Key) })
	assert.Equal(t, []string{"project_name", "short_description", "author", "github", "gh_user", "year"}, keys)
}

func TestDefaultYearIsDerivedFromClock(t *testing.T) {
	s := Default(fixedNow)
	year, ok := s.Get("year")
	require.True(t, ok)

	assert.True(t, year.NoPrompt)
	assert.Equal(t, "2026", runPipeline(year, ""))
}

func TestNormalization(t *testing.T) {
	tests := []struct {
		name string
		spec VariableSpec
		raw  string
		want string
	}{
		{"lower case", VariableSpec{Key: "a", LowerCase: true}, "MyProject", "myproject"},
		{"identifier", VariableSpec{Key: "a", ValidIdentifier: true}, "my-proj", "my_proj"},
		{"both", VariableSpec{Key: "a", LowerCase: true, ValidIdentifier: true}, "My-Proj", "my_proj"},
		{"no rules", VariableSpec{Key: "a"}, "My-Proj", "My-Proj"},
		{
			"transform runs first",
			VariableSpec{Key: "a", LowerCase: true, Transform: func(s string) string { return s + "-SUFFIX" }},
			"X",
			"x-suffix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runPipeline(tt.spec, tt.raw))
		})
	}
}

func TestPipelineStepNames(t *testing.T) {
	s := Default(fixedNow)
	name, _ := s.Get("project_name")

	steps := name.Pipeline()
	require.Len(t, steps, 2)
	assert.Equal(t, "lower case", steps[0].Name)
	assert.Equal(t, "python name", steps[1].Name)
	assert.False(t, steps[0].Silent)

	year, _ := s.Get("year")
	require.Len(t, year.Pipeline(), 1)
	assert.True(t, year.Pipeline()[0].Silent)
}

func TestValid(t *testing.T) {
	s := Default(fixedNow)
	gh, _ := s.Get("github")

	assert.True(t, gh.Valid("atopile/faebryk"))
	assert.True(t, gh.Valid("my-org/my-repo"))
	assert.False(t, gh.Valid("not a repo"))
	assert.False(t, gh.Valid("owner/repo/extra"))
	assert.False(t, gh.Valid(""))

	author, _ := s.Get("author")
	assert.True(t, author.Valid(""))
}

func TestValidIsAnchoredAtStart(t *testing.T) {
	s, err := New(Prefix, VariableSpec{Key: "v", Pattern: `[0-9]+`})
	require.NoError(t, err)
	v, _ := s.Get("v")

	assert.True(t, v.Valid("123abc"))
	assert.False(t, v.Valid("abc123"))
}

func TestNewRejectsBadSchemas(t *testing.T) {
	_, err := New(Prefix, VariableSpec{Key: "a"}, VariableSpec{Key: "a"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = New(Prefix, VariableSpec{Key: "a", Pattern: "("})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = New(Prefix, VariableSpec{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	assert.Panics(t, func() { MustNew(Prefix, VariableSpec{Key: "a"}, VariableSpec{Key: "a"}) })
}

func TestLookup(t *testing.T) {
	s := Default(fixedNow)

	v, ok := s.Lookup("TEMPLATE_VAR_gh_user")
	require.True(t, ok)
	assert.Equal(t, "gh_user", v.Key)

	_, ok = s.Lookup("TEMPLATE_VAR_unknown")
	assert.False(t, ok)
	_, ok = s.Lookup("gh_user")
	assert.False(t, ok)
	assert.Equal(t, Prefix, s.Prefix())
}
