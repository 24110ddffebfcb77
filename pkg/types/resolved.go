package types

import (
	"fmt"
	"strings"
)

// Resolved maps placeholder tokens to their resolved values, remembering
// insertion order so traces and cache files are stable between runs.
type Resolved struct {
	tokens []string
	values map[string]string
}

// NewResolved creates an empty mapping
func NewResolved() *Resolved {
	return &Resolved{values: make(map[string]string)}
}

// Set stores value under token. A new token is appended to the order;
// an existing one keeps its position.
func (r *Resolved) Set(token, value string) {
	if _, ok := r.values[token]; !ok {
		r.tokens = append(r.tokens, token)
	}
	r.values[token] = value
}

// Get returns the value for token
func (r *Resolved) Get(token string) (string, bool) {
	v, ok := r.values[token]
	return v, ok
}

// Has reports whether token has a value
func (r *Resolved) Has(token string) bool {
	_, ok := r.values[token]
	return ok
}

// Len returns the number of tokens
func (r *Resolved) Len() int {
	return len(r.tokens)
}

// Tokens returns the tokens in insertion order
func (r *Resolved) Tokens() []string {
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Each calls fn for every token in insertion order
func (r *Resolved) Each(fn func(token, value string)) {
	for _, t := range r.tokens {
		fn(t, r.values[t])
	}
}

// Map returns a copy of the mapping as a plain map
func (r *Resolved) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy. The substitution phase works on a
// clone so nothing it does can change the token set mid-traversal.
func (r *Resolved) Clone() *Resolved {
	c := &Resolved{
		tokens: make([]string, len(r.tokens)),
		values: make(map[string]string, len(r.values)),
	}
	copy(c.tokens, r.tokens)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// String renders the mapping as {"token": "value", ...}
func (r *Resolved) String() string {
	parts := make([]string, 0, len(r.tokens))
	for _, t := range r.tokens {
		parts = append(parts, fmt.Sprintf("%q: %q", t, r.values[t]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
