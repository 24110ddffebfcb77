// pkg/commands/setup/setup_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS, Memory store, scripted prompter
// PURPOSE: Test a complete setup run over a template repository

package setup_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/atopile/faebryk-project-template/pkg/cache"
	"github.com/atopile/faebryk-project-template/pkg/commands/setup"
	"github.com/atopile/faebryk-project-template/pkg/config"
	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/prompt"
	"github.com/atopile/faebryk-project-template/pkg/testutil"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/atopile/faebryk-project-template/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
}

func templateRepo() map[string]string {
	return map[string]string{
		"src/TEMPLATE_VAR_project_name/__init__.py": "",
		"src/TEMPLATE_VAR_project_name/main.py":     "from TEMPLATE_VAR_project_name import x\n",
		"docs/index.md":                             "# TEMPLATE_VAR_project_name\n\nTEMPLATE_VAR_short_description\n",
		"LICENSE":                                   "Copyright (c) TEMPLATE_VAR_year TEMPLATE_VAR_author\n",
		"pyproject.toml":                            "[project]\nname = \"TEMPLATE_VAR_project_name\"\nauthors = [\"TEMPLATE_VAR_author\"]\n",
		"README_template.md":                        "# TEMPLATE_VAR_project_name\nhttps://github.com/TEMPLATE_VAR_github by @TEMPLATE_VAR_gh_user\n",
		"README.md":                                 "This is the project template. Run setup-project.\n",
	}
}

func answers() *prompt.Scripted {
	return prompt.NewScripted("My-Proj", "Does things", "Jane Doe <jane@doe.net>", "jane/my-proj", "jane")
}

func options(fs types.FS, store cache.Store, p prompt.Prompter, out *bytes.Buffer) setup.Options {
	return setup.Options{
		Root:         testutil.RepoRoot,
		CacheEnabled: true,
		Config:       config.Default(),
		FS:           fs,
		Store:        store,
		Prompter:     p,
		Reporter:     ui.NewReporter(out, ui.FormatText),
		Now:          fixedNow,
	}
}

func TestRunEndToEnd(t *testing.T) {
	fs := testutil.NewRepo(t, templateRepo())
	store := cache.NewMemoryStore(nil)
	var out bytes.Buffer

	result, err := setup.Run(options(fs, store, answers(), &out))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"src/my_proj/__init__.py": "",
		"src/my_proj/main.py":     "from my_proj import x\n",
		"docs/index.md":           "# my_proj\n\nDoes things\n",
		"LICENSE":                 "Copyright (c) 2026 Jane Doe <jane@doe.net>\n",
		"pyproject.toml":          "[project]\nname = \"my_proj\"\nauthors = [\"Jane Doe <jane@doe.net>\"]\n",
		"README.md":               "# my_proj\nhttps://github.com/jane/my-proj by @jane\n",
	}, testutil.ReadTree(t, fs, testutil.RepoRoot))

	assert.Equal(t, 6, result.Summary.Files)
	assert.Equal(t, 5, result.Summary.Rewritten)
	assert.Equal(t, 2, result.Summary.Renamed)
	assert.Equal(t, 6, result.Resolved.Len())
	assert.Equal(t, 6, store.Saves)

	trace := out.String()
	assert.Contains(t, trace, "Warning: converting to lower case: My-Proj -> my-proj\n")
	assert.Contains(t, trace, "Promoting README_template.md -> README.md\n")
	assert.Contains(t, trace, "✔ Project set up: 6 file(s) processed, 5 rewritten, 2 renamed\n")
	assert.NotContains(t, trace, "DRY RUN")
}

func TestRunResumesFromCache(t *testing.T) {
	store := cache.NewMemoryStore(nil)
	_, err := setup.Run(options(testutil.NewRepo(t, templateRepo()), store, answers(), &bytes.Buffer{}))
	require.NoError(t, err)

	// a second template checkout answers nothing
	fs := testutil.NewRepo(t, templateRepo())
	p := &testutil.MockPrompter{}
	var out bytes.Buffer

	result, err := setup.Run(options(fs, store, p, &out))
	require.NoError(t, err)

	p.AssertNotCalled(t, "Ask", mock.Anything)
	name, _ := result.Resolved.Get("TEMPLATE_VAR_project_name")
	assert.Equal(t, "my_proj", name)
	assert.Contains(t, out.String(), "Warning: using cached values: ")
	assert.True(t, testutil.Exists(fs, testutil.RepoRoot+"/src/my_proj/main.py"))
}

func TestRunDryRunLeavesRepositoryUntouched(t *testing.T) {
	fs := testutil.NewRepo(t, templateRepo())
	before := testutil.ReadTree(t, fs, testutil.RepoRoot)
	var dryOut bytes.Buffer

	opts := options(fs, cache.NewMemoryStore(nil), answers(), &dryOut)
	opts.DryRun = true
	result, err := setup.Run(opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, before, testutil.ReadTree(t, fs, testutil.RepoRoot))

	var liveOut bytes.Buffer
	_, err = setup.Run(options(testutil.NewRepo(t, templateRepo()), cache.NewMemoryStore(nil), answers(), &liveOut))
	require.NoError(t, err)

	assert.Equal(t, liveOut.String()+"DRY RUN MODE - No changes were made\n", dryOut.String())
}

func TestRunCorruptCacheAbortsBeforeFiles(t *testing.T) {
	fs := testutil.NewRepo(t, templateRepo())
	before := testutil.ReadTree(t, fs, testutil.RepoRoot)
	store := &testutil.MockStore{}
	store.On("Load").Return(nil, errors.New(errors.ErrCacheCorrupt, "not json"))

	_, err := setup.Run(options(fs, store, &testutil.MockPrompter{}, &bytes.Buffer{}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCacheCorrupt))
	assert.Equal(t, before, testutil.ReadTree(t, fs, testutil.RepoRoot))
}

func TestRunMissingRootAbortsBeforeSubstitution(t *testing.T) {
	files := templateRepo()
	delete(files, "docs/index.md")
	fs := testutil.NewRepo(t, files)
	before := testutil.ReadTree(t, fs, testutil.RepoRoot)

	_, err := setup.Run(options(fs, cache.NewMemoryStore(nil), answers(), &bytes.Buffer{}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingRoot))
	assert.Equal(t, before, testutil.ReadTree(t, fs, testutil.RepoRoot))
}

func TestRunMissingPlaceholderReadme(t *testing.T) {
	files := templateRepo()
	delete(files, "README.md")
	fs := testutil.NewRepo(t, files)

	_, err := setup.Run(options(fs, cache.NewMemoryStore(nil), answers(), &bytes.Buffer{}))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingFinalizerFile))
	// substitution already happened
	assert.True(t, testutil.Exists(fs, testutil.RepoRoot+"/src/my_proj/main.py"))
}

func TestRunPresets(t *testing.T) {
	fs := testutil.NewRepo(t, templateRepo())
	p := prompt.NewScripted("Does things", "Jane Doe <jane@doe.net>", "jane")

	opts := options(fs, cache.NewMemoryStore(nil), p, &bytes.Buffer{})
	opts.Presets = map[string]string{"project_name": "preset", "github": "jane/preset"}
	result, err := setup.Run(opts)
	require.NoError(t, err)

	assert.Len(t, p.Asked, 3)
	github, _ := result.Resolved.Get("TEMPLATE_VAR_github")
	assert.Equal(t, "jane/preset", github)
}

func TestRunUnknownPreset(t *testing.T) {
	fs := testutil.NewRepo(t, templateRepo())
	opts := options(fs, cache.NewMemoryStore(nil), &testutil.MockPrompter{}, &bytes.Buffer{})
	opts.Presets = map[string]string{"licence": "MIT"}

	_, err := setup.Run(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
