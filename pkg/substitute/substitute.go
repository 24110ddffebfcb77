// Package substitute rewrites collected files: every placeholder token is
// replaced in the file content and in the file path, and files whose path
// changed are moved, pruning directories left empty behind them.
//
// Content and path of a file are both computed before anything is written,
// so a single file is either fully transformed or untouched. Across files
// there is no atomicity.
package substitute

import (
	"path/filepath"
	"strings"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/atopile/faebryk-project-template/pkg/ui"
)

const dirPerm = 0755

// Engine applies a resolved mapping to files below Root
type Engine struct {
	FS   types.FS
	Root string

	// DryRun traces everything but leaves storage untouched
	DryRun bool

	Reporter *ui.Reporter
}

// Outcome describes what happened to one file
type Outcome struct {
	Target types.FileTarget

	// NewRel is the relative path after substitution
	NewRel string

	ContentChanged bool
	Renamed        bool

	// Replacements counts tokens found in the content
	Replacements int
}

// Summary aggregates the outcomes of a run
type Summary struct {
	Files     int
	Rewritten int
	Renamed   int
	Outcomes  []Outcome
}

func (e *Engine) reporter() *ui.Reporter {
	if e.Reporter == nil {
		return ui.Discard()
	}
	return e.Reporter
}

// ApplyAll transforms targets in order and stops at the first failure
func (e *Engine) ApplyAll(targets []types.FileTarget, resolved *types.Resolved) (Summary, error) {
	logger := logging.GetLogger("substitute")
	done := logging.LogOperationStart(logger, "substitute")
	defer done()

	var summary Summary
	for _, target := range targets {
		outcome, err := e.Apply(target, resolved)
		if err != nil {
			return summary, err
		}
		summary.Files++
		if outcome.ContentChanged {
			summary.Rewritten++
		}
		if outcome.Renamed {
			summary.Renamed++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	return summary, nil
}

// Apply transforms a single file
func (e *Engine) Apply(target types.FileTarget, resolved *types.Resolved) (Outcome, error) {
	logger := logging.GetLogger("substitute").With().Str("file", target.Rel).Logger()
	rep := e.reporter()
	outcome := Outcome{Target: target, NewRel: target.Rel}

	info, err := e.FS.Stat(target.Abs)
	if err != nil {
		return outcome, errors.Wrap(err, errors.ErrStorage, "cannot stat file").
			WithDetail("path", target.Abs)
	}
	data, err := e.FS.ReadFile(target.Abs)
	if err != nil {
		return outcome, errors.Wrap(err, errors.ErrStorage, "cannot read file").
			WithDetail("path", target.Abs)
	}

	content := string(data)
	rel := target.Rel
	resolved.Each(func(token, value string) {
		if n := strings.Count(content, token); n > 0 {
			content = strings.ReplaceAll(content, token, value)
			outcome.Replacements += n
			rep.Replacing(target.Abs, token, value)
		}
		rel = strings.ReplaceAll(rel, token, value)
	})
	outcome.NewRel = rel
	outcome.ContentChanged = content != string(data)
	outcome.Renamed = rel != target.Rel

	dest := filepath.Join(e.Root, rel)
	if outcome.Renamed {
		rep.Renaming(target.Rel, rel)
	}

	if e.DryRun {
		logger.Debug().Msg("Dry run, leaving file untouched")
		return outcome, nil
	}

	if outcome.Renamed {
		if err := e.move(target.Abs, dest); err != nil {
			return outcome, err
		}
	}

	if err := e.FS.WriteFile(dest, []byte(content), info.Mode().Perm()); err != nil {
		return outcome, errors.Wrap(err, errors.ErrStorage, "cannot write file").
			WithDetail("path", dest)
	}

	logger.Debug().
		Int("replacements", outcome.Replacements).
		Bool("renamed", outcome.Renamed).
		Msg("File transformed")
	return outcome, nil
}

// move renames src to dest, creating parents of dest and removing every
// ancestor of src that became empty
func (e *Engine) move(src, dest string) error {
	if err := e.FS.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return errors.Wrap(err, errors.ErrStorage, "cannot create directory").
			WithDetail("path", filepath.Dir(dest))
	}
	if err := e.FS.Rename(src, dest); err != nil {
		return errors.Wrap(err, errors.ErrStorage, "cannot move file").
			WithDetail("from", src).
			WithDetail("to", dest)
	}
	return e.pruneEmpty(filepath.Dir(src))
}

// pruneEmpty walks upward from dir removing empty directories. It stops at
// the first non-empty one and never removes Root.
func (e *Engine) pruneEmpty(dir string) error {
	logger := logging.GetLogger("substitute")
	root := filepath.Clean(e.Root)

	for {
		dir = filepath.Clean(dir)
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil
		}

		entries, err := e.FS.ReadDir(dir)
		if err != nil {
			return errors.Wrap(err, errors.ErrStorage, "cannot read directory").
				WithDetail("path", dir)
		}
		if len(entries) > 0 {
			return nil
		}

		if err := e.FS.Remove(dir); err != nil {
			return errors.Wrap(err, errors.ErrStorage, "cannot remove directory").
				WithDetail("path", dir)
		}
		logger.Debug().Str("path", dir).Msg("Removed empty directory")
		dir = filepath.Dir(dir)
	}
}
