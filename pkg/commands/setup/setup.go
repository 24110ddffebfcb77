// Package setup runs the whole bootstrap: variables are resolved, every
// file below the configured roots is rewritten and the README is swapped.
// A run is strictly sequential and stops at the first fatal error,
// leaving already rewritten files as they are.
package setup

import (
	"os"
	"time"

	"github.com/atopile/faebryk-project-template/pkg/cache"
	"github.com/atopile/faebryk-project-template/pkg/collector"
	"github.com/atopile/faebryk-project-template/pkg/config"
	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/filesystem"
	"github.com/atopile/faebryk-project-template/pkg/finalize"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/prompt"
	"github.com/atopile/faebryk-project-template/pkg/resolver"
	"github.com/atopile/faebryk-project-template/pkg/schema"
	"github.com/atopile/faebryk-project-template/pkg/substitute"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/atopile/faebryk-project-template/pkg/ui"
)

// Options holds options for a setup run
type Options struct {
	// Root is the absolute repository root
	Root string

	// CacheEnabled reuses cached answers
	CacheEnabled bool

	// DryRun traces every change without touching the repository
	DryRun bool

	// Presets maps variable keys to answers given up front
	Presets map[string]string

	// Everything below falls back to a default when nil
	Config   *config.Config
	Schema   *schema.Schema
	FS       types.FS
	Store    cache.Store
	Prompter prompt.Prompter
	Reporter *ui.Reporter
	Now      func() time.Time
}

// Result describes a finished run
type Result struct {
	Resolved *types.Resolved
	Summary  substitute.Summary
	DryRun   bool
}

// Run bootstraps the repository at opts.Root
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.setup")
	logger.Info().
		Str("root", opts.Root).
		Bool("cache", opts.CacheEnabled).
		Bool("dry_run", opts.DryRun).
		Msg("Setting up project")

	opts = withDefaults(opts)

	if err := checkPresets(opts.Schema, opts.Presets); err != nil {
		return nil, err
	}

	res := resolver.New(resolver.Options{
		Schema:        opts.Schema,
		Store:         opts.Store,
		Prompter:      opts.Prompter,
		Reporter:      opts.Reporter,
		Presets:       opts.Presets,
		PersistAlways: opts.Config.Cache.PersistAlways,
	})
	resolved, err := res.ResolveAll(opts.CacheEnabled)
	if err != nil {
		return nil, err
	}
	snapshot := resolved.Clone()

	targets, err := collector.Collect(opts.FS, opts.Root, opts.Config.Roots)
	if err != nil {
		return nil, err
	}

	engine := &substitute.Engine{
		FS:       opts.FS,
		Root:     opts.Root,
		DryRun:   opts.DryRun,
		Reporter: opts.Reporter,
	}
	summary, err := engine.ApplyAll(targets, snapshot)
	if err != nil {
		return nil, err
	}

	finalizer := &finalize.Finalizer{
		FS:                opts.FS,
		Root:              opts.Root,
		PlaceholderReadme: opts.Config.Readme.Placeholder,
		TemplateReadme:    opts.Config.Readme.Template,
		CanonicalReadme:   opts.Config.Readme.Canonical,
		DryRun:            opts.DryRun,
		Reporter:          opts.Reporter,
	}
	if err := finalizer.Run(); err != nil {
		return nil, err
	}

	opts.Reporter.Summary(summary.Files, summary.Rewritten, summary.Renamed, opts.DryRun)

	logger.Info().
		Int("variables", snapshot.Len()).
		Int("files", summary.Files).
		Int("rewritten", summary.Rewritten).
		Int("renamed", summary.Renamed).
		Msg("Project set up")

	return &Result{
		Resolved: snapshot,
		Summary:  summary,
		DryRun:   opts.DryRun,
	}, nil
}

func withDefaults(opts Options) Options {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Schema == nil {
		opts.Schema = schema.Default(opts.Now)
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Store == nil {
		opts.Store = cache.NewFileStore(opts.FS, opts.Config.Cache.File())
	}
	if opts.Reporter == nil {
		opts.Reporter = ui.Discard()
	}
	if opts.Prompter == nil {
		opts.Prompter = prompt.NewConsole(os.Stdin, os.Stdout, opts.Reporter.Styled())
	}
	return opts
}

func checkPresets(s *schema.Schema, presets map[string]string) error {
	for key := range presets {
		if _, ok := s.Get(key); !ok {
			return errors.Newf(errors.ErrInvalidInput, "unknown variable %q", key).
				WithDetail("known", s.Tokens())
		}
	}
	return nil
}
