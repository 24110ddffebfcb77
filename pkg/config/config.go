package config

import (
	_ "embed"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/paths"
	"github.com/atopile/faebryk-project-template/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// FileName is the per-repository configuration file
	FileName = ".setup-project.toml"

	// EnvPrefix marks environment variables read as configuration
	EnvPrefix = "SETUP_PROJECT_"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config is the effective configuration of a run
type Config struct {
	// Roots are the entries below the repository root that get rewritten
	Roots []string `koanf:"roots"`

	Readme Readme `koanf:"readme"`
	Cache  Cache  `koanf:"cache"`
}

// Readme names the files swapped by the finalizer
type Readme struct {
	Placeholder string `koanf:"placeholder"`
	Template    string `koanf:"template"`
	Canonical   string `koanf:"canonical"`
}

// Cache configures the answer snapshot
type Cache struct {
	Path          string `koanf:"path"`
	PersistAlways bool   `koanf:"persist_always"`
}

// File returns the snapshot location, falling back to the default
func (c Cache) File() string {
	if c.Path == "" {
		return paths.DefaultCacheFile()
	}
	return c.Path
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the built-in configuration
func Default() *Config {
	k, err := defaults()
	if err == nil {
		var cfg *Config
		if cfg, err = unmarshal(k); err == nil {
			return cfg
		}
	}
	// the embedded defaults are fixed at build time
	panic(err)
}

// Load builds the configuration from, in increasing priority: the embedded
// defaults, the user file below XDG_CONFIG_HOME, <root>/.setup-project.toml
// read through fsys, SETUP_PROJECT_* environment variables and overrides.
// An empty root skips the repository file; override keys use dots
// ("cache.path").
func Load(fsys types.FS, root string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")

	// 1. Embedded defaults
	k, err := defaults()
	if err != nil {
		return nil, err
	}

	// 2. User config if it exists
	userPath := paths.UserConfigFile()
	if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load user config").
				WithDetail("path", userPath)
		}
	} else {
		logger.Debug().Str("path", userPath).Msg("Loaded user config")
	}

	// 3. Repository config if it exists
	if root != "" {
		path := filepath.Join(root, FileName)
		if _, err := fsys.Stat(path); err == nil {
			data, err := fsys.ReadFile(path)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read repository config").
					WithDetail("path", path)
			}
			if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load repository config").
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded repository config")
		} else if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot access repository config").
				WithDetail("path", path)
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Command line
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return unmarshal(k)
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps SETUP_PROJECT_CACHE_PERSIST_ALWAYS to cache.persist_always.
// Only the first underscore separates the section from the key.
// SETUP_PROJECT_ROOT selects the repository and is not configuration.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "root" {
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}

func (c *Config) validate() error {
	if len(c.Roots) == 0 {
		return errors.New(errors.ErrConfigParse, "roots must not be empty")
	}
	for _, r := range c.Roots {
		if r == "" || filepath.IsAbs(r) {
			return errors.New(errors.ErrConfigParse, "roots must be relative paths").
				WithDetail("root", r)
		}
	}
	if c.Readme.Placeholder == "" || c.Readme.Template == "" || c.Readme.Canonical == "" {
		return errors.New(errors.ErrConfigParse, "readme file names must not be empty")
	}
	return nil
}
