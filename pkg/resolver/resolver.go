// Package resolver turns a variable schema into concrete values, reusing
// cached values, asking the user for the rest and persisting progress
// after every variable.
package resolver

import (
	"sort"

	"github.com/atopile/faebryk-project-template/pkg/cache"
	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/prompt"
	"github.com/atopile/faebryk-project-template/pkg/schema"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/atopile/faebryk-project-template/pkg/ui"
)

// Options configures a Resolver
type Options struct {
	Schema   *schema.Schema
	Store    cache.Store
	Prompter prompt.Prompter
	Reporter *ui.Reporter

	// Presets maps variable keys to raw input used for the first attempt
	// instead of asking
	Presets map[string]string

	// PersistAlways saves progress even when the cache is disabled for
	// the run, so a later cached run can resume
	PersistAlways bool
}

// Resolver produces the resolved variable mapping for a run
type Resolver struct {
	opts Options
}

// New creates a resolver
func New(opts Options) *Resolver {
	if opts.Reporter == nil {
		opts.Reporter = ui.Discard()
	}
	return &Resolver{opts: opts}
}

// ResolveAll resolves every variable of the schema. Cached values are
// taken as they are; everything else runs through the resolution loop.
func (r *Resolver) ResolveAll(cacheEnabled bool) (*types.Resolved, error) {
	logger := logging.GetLogger("resolver")
	done := logging.LogOperationStart(logger, "resolve")
	defer done()

	resolved := types.NewResolved()

	if cacheEnabled {
		cached, err := r.opts.Store.Load()
		if err != nil {
			return nil, err
		}
		// an empty snapshot still counts as a cache
		if cached != nil {
			r.seed(resolved, cached)
			r.opts.Reporter.CachedValues(resolved)
		}
	}

	persist := cacheEnabled || r.opts.PersistAlways

	var err error
	r.opts.Schema.ForEach(func(spec schema.VariableSpec) {
		if err != nil {
			return
		}
		token := r.opts.Schema.Token(spec)
		if resolved.Has(token) {
			logger.Debug().Str("token", token).Msg("Using cached value")
			return
		}

		var value string
		value, err = r.resolveOne(spec)
		if err != nil {
			return
		}
		resolved.Set(token, value)
		logger.Info().Str("token", token).Str("value", value).Msg("Resolved variable")

		if persist {
			if saveErr := r.opts.Store.Save(resolved.Map()); saveErr != nil {
				err = errors.Wrapf(saveErr, errors.ErrCacheWrite, "cannot persist %s", token)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// seed loads cached values so schema tokens keep declaration order and
// unknown tokens follow sorted
func (r *Resolver) seed(resolved *types.Resolved, cached map[string]string) {
	logger := logging.GetLogger("resolver")

	for _, token := range r.opts.Schema.Tokens() {
		if v, ok := cached[token]; ok {
			resolved.Set(token, v)
		}
	}
	var extra []string
	for token := range cached {
		if _, known := r.opts.Schema.Lookup(token); !known {
			extra = append(extra, token)
		}
	}
	sort.Strings(extra)
	for _, token := range extra {
		logger.Debug().Str("token", token).Msg("Keeping cached value of unknown variable")
		resolved.Set(token, cached[token])
	}
}

// resolveOne loops until the spec yields a valid value. There is no retry
// limit; only a prompter error ends the loop early.
func (r *Resolver) resolveOne(spec schema.VariableSpec) (string, error) {
	preset, hasPreset := r.opts.Presets[spec.Key]

	for {
		var raw string
		fromPreset := hasPreset
		switch {
		case hasPreset:
			raw = preset
			hasPreset = false
		case spec.NoPrompt:
			raw = ""
		default:
			answer, err := r.opts.Prompter.Ask(spec.Description)
			if err != nil {
				return "", err
			}
			raw = answer
		}

		value := raw
		for _, step := range spec.Pipeline() {
			next := step.Apply(value)
			if next != value && !step.Silent {
				r.opts.Reporter.Converted(step.Name, value, next)
			}
			value = next
		}

		if !spec.Valid(value) {
			r.opts.Reporter.InvalidValue(value)
			if spec.NoPrompt && !fromPreset {
				// without a prompt the next attempt would produce the same value
				return "", errors.Newf(errors.ErrInvalidInput, "computed value %q for %s does not match %s", value, spec.Key, spec.Pattern)
			}
			continue
		}

		return value, nil
	}
}
