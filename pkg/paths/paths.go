// Package paths locates the repository being set up and the files the
// tool keeps outside of it.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/atopile/faebryk-project-template/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot selects the repository root when no flag is given
	EnvRoot = "SETUP_PROJECT_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Per-user configuration, below XDG_CONFIG_HOME
const (
	appDirName         = "setup-project"
	UserConfigFileName = "config.toml"
)

// CacheFileName is the snapshot file name shared with the template's
// earlier tooling
const CacheFileName = "app_template_cache.json"

// Root is a resolved repository root
type Root struct {
	Path string

	// UsedFallback is set when the current directory was taken because
	// nothing else pointed at a repository
	UsedFallback bool
}

// gitToplevel is replaced in tests
var gitToplevel = findGitRoot

// ResolveRoot determines the repository root using the following priority:
// 1. the explicit value (usually the --root flag)
// 2. SETUP_PROJECT_ROOT
// 3. Git repository root (found via 'git rev-parse --show-toplevel')
// 4. Current working directory (fallback)
//
// The result is absolute and must be an existing directory.
func ResolveRoot(explicit string) (Root, error) {
	root, err := locateRoot(explicit)
	if err != nil {
		return Root{}, err
	}

	abs, err := filepath.Abs(root.Path)
	if err != nil {
		return Root{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", root.Path)
	}
	root.Path = abs

	info, err := os.Stat(abs)
	if err != nil {
		return Root{}, errors.Wrap(err, errors.ErrNotFound, "repository root does not exist").
			WithDetail("path", abs)
	}
	if !info.IsDir() {
		return Root{}, errors.New(errors.ErrInvalidInput, "repository root is not a directory").
			WithDetail("path", abs)
	}
	return root, nil
}

func locateRoot(explicit string) (Root, error) {
	if explicit != "" {
		return Root{Path: ExpandHome(explicit)}, nil
	}

	if env := os.Getenv(EnvRoot); env != "" {
		return Root{Path: ExpandHome(env)}, nil
	}

	if gitRoot, err := gitToplevel(); err == nil && gitRoot != "" {
		return Root{Path: gitRoot}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Root{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return Root{Path: cwd, UsedFallback: true}, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		// not in a git repo or git not installed
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// DefaultCacheFile returns the snapshot location used when none is
// configured
func DefaultCacheFile() string {
	return filepath.Join(os.TempDir(), CacheFileName)
}

// UserConfigFile returns the per-user configuration file
// (~/.config/setup-project/config.toml unless XDG_CONFIG_HOME is set)
func UserConfigFile() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, appDirName, UserConfigFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			// Can't expand, return as-is
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
