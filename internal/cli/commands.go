package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atopile/faebryk-project-template/internal/version"
	"github.com/atopile/faebryk-project-template/pkg/cache"
	"github.com/atopile/faebryk-project-template/pkg/commands/setup"
	"github.com/atopile/faebryk-project-template/pkg/commands/vars"
	"github.com/atopile/faebryk-project-template/pkg/config"
	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/atopile/faebryk-project-template/pkg/filesystem"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/paths"
	"github.com/atopile/faebryk-project-template/pkg/prompt"
	"github.com/atopile/faebryk-project-template/pkg/schema"
	"github.com/atopile/faebryk-project-template/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootFlags are shared by the root command and its subcommands
type rootFlags struct {
	verbosity int
	dryRun    bool
	cache     bool
	noCache   bool
	root      string
	cacheFile string
	format    string
	presets   []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "setup-project",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&flags.cacheFile, "cache-file", "", MsgFlagCacheFile)
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "auto", MsgFlagFormat)

	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&flags.cache, "cache", true, MsgFlagCache)
	rootCmd.Flags().BoolVar(&flags.noCache, "no-cache", false, MsgFlagNoCache)
	rootCmd.Flags().StringArrayVar(&flags.presets, "set", nil, MsgFlagSet)
	rootCmd.MarkFlagsMutuallyExclusive("cache", "no-cache")

	rootCmd.AddCommand(newVarsCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// newReporter creates a reporter on w honoring --format
func newReporter(w io.Writer, flags *rootFlags) (*ui.Reporter, error) {
	format, err := ui.ParseFormat(flags.format)
	if err != nil {
		return nil, err
	}
	return ui.NewReporter(w, format), nil
}

// loadConfig resolves the repository root and its configuration
func loadConfig(cmd *cobra.Command, flags *rootFlags) (paths.Root, *config.Config, error) {
	root, err := paths.ResolveRoot(flags.root)
	if err != nil {
		return paths.Root{}, nil, err
	}
	if root.UsedFallback {
		warnings, err := newReporter(cmd.ErrOrStderr(), flags)
		if err != nil {
			return paths.Root{}, nil, err
		}
		warnings.Warn(ui.MsgFallbackWarning, root.Path)
	}

	overrides := map[string]interface{}{}
	if flags.cacheFile != "" {
		overrides["cache.path"] = paths.ExpandHome(flags.cacheFile)
	}

	cfg, err := config.Load(filesystem.NewOS(), root.Path, overrides)
	if err != nil {
		return paths.Root{}, nil, err
	}
	return root, cfg, nil
}

func runSetup(cmd *cobra.Command, flags *rootFlags) error {
	logger := logging.GetLogger("cli.setup")

	presets, err := parsePresets(flags.presets)
	if err != nil {
		return err
	}
	reporter, err := newReporter(cmd.OutOrStdout(), flags)
	if err != nil {
		return err
	}

	root, cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	fs := filesystem.NewOS()
	store := cache.NewFileStore(fs, cfg.Cache.File())
	cacheEnabled := flags.cache && !flags.noCache
	logger.Info().
		Str("root", root.Path).
		Str("cache_file", store.Path()).
		Bool("cache", cacheEnabled).
		Msg("Starting setup")

	_, err = setup.Run(setup.Options{
		Root:         root.Path,
		CacheEnabled: cacheEnabled,
		DryRun:       flags.dryRun,
		Presets:      presets,
		Config:       cfg,
		FS:           fs,
		Store:        store,
		Prompter:     prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), reporter.Styled()),
		Reporter:     reporter,
		Now:          time.Now,
	})
	return err
}

// PrintError writes err in the error style. Code and details of structured
// errors go to the debug log.
func PrintError(w io.Writer, err error) {
	log.Debug().
		Str("code", string(errors.GetErrorCode(err))).
		Interface("details", errors.GetErrorDetails(err)).
		Msg("Command failed")
	fmt.Fprintln(w, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
}

// parsePresets turns repeated key=value flags into a map. Later values
// win.
func parsePresets(values []string) (map[string]string, error) {
	presets := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrSetFormat, v)
		}
		presets[strings.TrimSpace(key)] = value
	}
	return presets, nil
}

func newVarsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: MsgVarsShort,
		Long:  MsgVarsLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := newReporter(cmd.OutOrStdout(), flags)
			if err != nil {
				return err
			}
			_, cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			store := cache.NewFileStore(filesystem.NewOS(), cfg.Cache.File())
			table, err := vars.List(schema.Default(time.Now), store)
			if err != nil {
				return err
			}

			if reporter.Styled() {
				table = ui.RenderMarkdown(table, ui.TerminalWidth(cmd.OutOrStdout()))
			}
			reporter.Print(table)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "setup-project version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(setup-project completion bash)

Zsh:
  $ setup-project completion zsh > "${fpath[1]}/_setup-project"

Fish:
  $ setup-project completion fish | source

PowerShell:
  PS> setup-project completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
