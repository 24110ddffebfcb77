// Package collector expands the configured root entries of a repository
// into the flat list of files that take part in substitution.
package collector

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/types"
)

// Collect returns every regular file reachable from rootNames below
// repoRoot. Directories are expanded recursively, files are taken as they
// are. Symlinks and special files are skipped. The result is sorted by
// relative path.
func Collect(filesystem types.FS, repoRoot string, rootNames []string) ([]types.FileTarget, error) {
	logger := logging.GetLogger("collector")
	logger.Debug().Str("root", repoRoot).Strs("entries", rootNames).Msg("Collecting files")

	var targets []types.FileTarget
	for _, name := range rootNames {
		abs := filepath.Join(repoRoot, name)

		info, err := filesystem.Lstat(abs)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrMissingRoot, "root entry does not exist").
				WithDetail("path", abs)
		}

		found, err := collectEntry(filesystem, repoRoot, abs, info.Mode())
		if err != nil {
			return nil, err
		}
		targets = append(targets, found...)
	}

	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Rel < targets[j].Rel
	})
	logger.Info().Int("count", len(targets)).Msg("Collected files")
	return targets, nil
}

func collectEntry(filesystem types.FS, repoRoot, abs string, mode fs.FileMode) ([]types.FileTarget, error) {
	logger := logging.GetLogger("collector")

	switch {
	case mode.IsRegular():
		rel, err := filepath.Rel(repoRoot, abs)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot relativize path").
				WithDetail("path", abs)
		}
		return []types.FileTarget{{Rel: rel, Abs: abs}}, nil

	case mode.IsDir():
		entries, err := filesystem.ReadDir(abs)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read directory").
				WithDetail("path", abs)
		}
		var targets []types.FileTarget
		for _, entry := range entries {
			child := filepath.Join(abs, entry.Name())
			info, err := filesystem.Lstat(child)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot stat file").
					WithDetail("path", child)
			}
			found, err := collectEntry(filesystem, repoRoot, child, info.Mode())
			if err != nil {
				return nil, err
			}
			targets = append(targets, found...)
		}
		return targets, nil

	default:
		logger.Debug().Str("path", abs).Str("mode", mode.String()).Msg("Skipping non-regular file")
		return nil, nil
	}
}
