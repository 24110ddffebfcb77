// Package schema declares the placeholder variables a template exposes and
// the normalization rules applied to each resolved value.
package schema

import (
	"regexp"

	"github.com/atopile/faebryk-project-template/pkg/errors"
)

// Prefix is prepended to every variable key to form the placeholder token
// searched for in file contents and paths. Template payloads embed these
// tokens, so the value must never change.
const Prefix = "TEMPLATE_VAR_"

// VariableSpec declares one placeholder variable
type VariableSpec struct {
	// Key is unique within a schema
	Key string

	// Description is the prompt text. May be empty when NoPrompt is set.
	Description string

	// LowerCase forces the value to lower case
	LowerCase bool

	// ValidIdentifier rewrites '-' to '_'
	ValidIdentifier bool

	// NoPrompt means the user is never asked; the value comes from
	// Transform or from a preset
	NoPrompt bool

	// Pattern is an optional validation regular expression
	Pattern string

	// Transform derives the working value from the raw input
	Transform func(raw string) string

	pattern *regexp.Regexp
}

// Valid reports whether value satisfies the pattern. Matching is anchored
// at the start of the value; a spec without a pattern accepts anything.
func (v VariableSpec) Valid(value string) bool {
	if v.pattern == nil {
		return true
	}
	loc := v.pattern.FindStringIndex(value)
	return loc != nil && loc[0] == 0
}

// Schema is an ordered list of variable specs sharing a token prefix
type Schema struct {
	prefix string
	vars   []VariableSpec
	byKey  map[string]int
}

// New builds a schema, rejecting duplicate keys and invalid patterns
func New(prefix string, vars ...VariableSpec) (*Schema, error) {
	s := &Schema{
		prefix: prefix,
		vars:   make([]VariableSpec, 0, len(vars)),
		byKey:  make(map[string]int, len(vars)),
	}
	for _, v := range vars {
		if v.Key == "" {
			return nil, errors.New(errors.ErrInvalidInput, "variable key must not be empty")
		}
		if _, dup := s.byKey[v.Key]; dup {
			return nil, errors.Newf(errors.ErrInvalidInput, "duplicate variable key %q", v.Key)
		}
		if v.Pattern != "" {
			re, err := regexp.Compile(v.Pattern)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid pattern for variable %q", v.Key)
			}
			v.pattern = re
		}
		s.byKey[v.Key] = len(s.vars)
		s.vars = append(s.vars, v)
	}
	return s, nil
}

// MustNew is like New but panics on error. Used for static tables.
func MustNew(prefix string, vars ...VariableSpec) *Schema {
	s, err := New(prefix, vars...)
	if err != nil {
		panic(err)
	}
	return s
}

// Prefix returns the token prefix
func (s *Schema) Prefix() string {
	return s.prefix
}

// Token returns the placeholder token for a spec
func (s *Schema) Token(v VariableSpec) string {
	return s.prefix + v.Key
}

// ForEach calls fn for every spec in declaration order
func (s *Schema) ForEach(fn func(VariableSpec)) {
	for _, v := range s.vars {
		fn(v)
	}
}

// Vars returns a copy of the specs in declaration order
func (s *Schema) Vars() []VariableSpec {
	out := make([]VariableSpec, len(s.vars))
	copy(out, s.vars)
	return out
}

// Tokens returns every token in declaration order
func (s *Schema) Tokens() []string {
	out := make([]string, 0, len(s.vars))
	for _, v := range s.vars {
		out = append(out, s.Token(v))
	}
	return out
}

// Get looks a spec up by key
func (s *Schema) Get(key string) (VariableSpec, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return VariableSpec{}, false
	}
	return s.vars[i], true
}

// Lookup finds the spec whose token equals token
func (s *Schema) Lookup(token string) (VariableSpec, bool) {
	if len(token) < len(s.prefix) || token[:len(s.prefix)] != s.prefix {
		return VariableSpec{}, false
	}
	return s.Get(token[len(s.prefix):])
}
