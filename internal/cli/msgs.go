package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Turn the project template into your project"
	MsgVarsShort       = "List the template variables"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagCache     = "Reuse answers saved by a previous run"
	MsgFlagNoCache   = "Ignore answers saved by a previous run"
	MsgFlagRoot      = "Repository root (default: $SETUP_PROJECT_ROOT, the git toplevel or the current directory)"
	MsgFlagCacheFile = "Where answers are saved (.json, .toml, .yaml)"
	MsgFlagSet       = "Answer a variable up front, as key=value (repeatable)"
	MsgFlagFormat    = "Output format: auto, term or text"

	// Error messages
	MsgErrSetFormat = "invalid --set value %q, expected key=value"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/vars-long.txt
	msgVarsLongRaw string
	MsgVarsLong    = strings.TrimSpace(msgVarsLongRaw)
)
