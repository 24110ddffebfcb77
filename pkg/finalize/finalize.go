// Package finalize performs the closing steps of a setup run: the
// placeholder README is deleted and the templated README takes its name.
package finalize

import (
	"path/filepath"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/atopile/faebryk-project-template/pkg/ui"
)

// Finalizer swaps the README files below Root
type Finalizer struct {
	FS   types.FS
	Root string

	// PlaceholderReadme is removed, TemplateReadme is renamed to
	// CanonicalReadme. All three are relative to Root.
	PlaceholderReadme string
	TemplateReadme    string
	CanonicalReadme   string

	// DryRun still checks and traces both steps but changes nothing
	DryRun bool

	Reporter *ui.Reporter
}

// Run removes the placeholder and promotes the template. Both files must
// exist before anything is changed.
func (f *Finalizer) Run() error {
	logger := logging.GetLogger("finalize")
	rep := f.Reporter
	if rep == nil {
		rep = ui.Discard()
	}

	placeholder := filepath.Join(f.Root, f.PlaceholderReadme)
	template := filepath.Join(f.Root, f.TemplateReadme)
	canonical := filepath.Join(f.Root, f.CanonicalReadme)

	for _, path := range []string{placeholder, template} {
		if _, err := f.FS.Stat(path); err != nil {
			return errors.Wrap(err, errors.ErrMissingFinalizerFile, "finalizer file not found").
				WithDetail("path", path)
		}
	}

	rep.Removing(f.PlaceholderReadme)
	if !f.DryRun {
		if err := f.FS.Remove(placeholder); err != nil {
			return errors.Wrap(err, errors.ErrStorage, "cannot remove file").
				WithDetail("path", placeholder)
		}
	}

	rep.Promoting(f.TemplateReadme, f.CanonicalReadme)
	if !f.DryRun {
		if err := f.FS.Rename(template, canonical); err != nil {
			return errors.Wrap(err, errors.ErrStorage, "cannot rename file").
				WithDetail("from", template).
				WithDetail("to", canonical)
		}
	}

	logger.Info().Bool("dry_run", f.DryRun).Str("readme", canonical).Msg("Finalized")
	return nil
}
