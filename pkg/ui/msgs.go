package ui

// User-facing notice and trace formats
const (
	MsgWarningPrefix   = "Warning: "
	MsgUsingCached     = "using cached values: %s"
	MsgConverting      = "converting to %s: %s -> %s"
	MsgInvalidValue    = "Invalid value: %s"
	MsgReplacing       = "Replacing in %s: |%s| -> |%s|"
	MsgRenaming        = "Renaming %s -> %s"
	MsgRemoving        = "Removing %s"
	MsgPromoting       = "Promoting %s -> %s"
	MsgSummary         = "✔ Project set up: %d file(s) processed, %d rewritten, %d renamed"
	MsgDryRunNotice    = "DRY RUN MODE - No changes were made"
	MsgFallbackWarning = "no repository root given and not inside a git checkout, using current directory %s"
)
