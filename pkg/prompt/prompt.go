// Package prompt asks the user for variable values.
package prompt

// Prompter presents a question and returns one line of input.
// It returns an INTERRUPTED error when no more input can be read.
type Prompter interface {
	Ask(question string) (string, error)
}
