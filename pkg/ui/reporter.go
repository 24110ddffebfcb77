package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// Reporter writes notices and traces for one run
type Reporter struct {
	out    io.Writer
	styled bool
}

// NewReporter creates a reporter on out. FormatAuto picks styling from the
// terminal capabilities of out.
func NewReporter(out io.Writer, format Format) *Reporter {
	if format == FormatAuto {
		format = DetectFormat(out)
	}
	return &Reporter{out: out, styled: format == FormatTerminal}
}

// Discard returns a reporter that prints nothing
func Discard() *Reporter {
	return &Reporter{out: io.Discard}
}

// Styled reports whether output is decorated
func (r *Reporter) Styled() bool {
	return r.styled
}

func (r *Reporter) line(s string) {
	fmt.Fprintln(r.out, strings.TrimRight(s, "\n"))
}

func (r *Reporter) path(p string) string {
	if !r.styled {
		return p
	}
	return PathStyle.Render(p)
}

func (r *Reporter) muted(s string) string {
	if !r.styled {
		return s
	}
	return MutedStyle.Render(s)
}

// Warn prints a non-fatal warning
func (r *Reporter) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if r.styled {
		r.line(pterm.Warning.Sprint(msg))
		return
	}
	r.line(MsgWarningPrefix + msg)
}

// CachedValues announces that cached values are reused
func (r *Reporter) CachedValues(values fmt.Stringer) {
	r.Warn(MsgUsingCached, values.String())
}

// Converted announces a normalization step that changed a value
func (r *Reporter) Converted(step, before, after string) {
	r.Warn(MsgConverting, step, before, after)
}

// InvalidValue announces a value that failed validation
func (r *Reporter) InvalidValue(value string) {
	msg := fmt.Sprintf(MsgInvalidValue, value)
	if r.styled {
		r.line(pterm.Error.Sprint(msg))
		return
	}
	r.line(msg)
}

// Replacing traces a token replaced in a file's content
func (r *Reporter) Replacing(file, token, value string) {
	r.line(fmt.Sprintf(MsgReplacing, r.path(file), r.muted(token), value))
}

// Renaming traces a file move
func (r *Reporter) Renaming(from, to string) {
	r.line(fmt.Sprintf(MsgRenaming, r.path(from), r.path(to)))
}

// Removing traces a file deletion
func (r *Reporter) Removing(path string) {
	r.line(fmt.Sprintf(MsgRemoving, r.path(path)))
}

// Promoting traces a file promoted to its canonical name
func (r *Reporter) Promoting(from, to string) {
	r.line(fmt.Sprintf(MsgPromoting, r.path(from), r.path(to)))
}

// Summary prints the closing line of a run
func (r *Reporter) Summary(files, rewritten, renamed int, dryRun bool) {
	msg := fmt.Sprintf(MsgSummary, files, rewritten, renamed)
	if r.styled {
		msg = SuccessStyle.Render(msg)
	}
	r.line(msg)
	if dryRun {
		notice := MsgDryRunNotice
		if r.styled {
			notice = WarningStyle.Render(notice)
		}
		r.line(notice)
	}
}

// Print writes a preformatted block, such as a rendered table, as is
func (r *Reporter) Print(s string) {
	r.line(s)
}
