package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atopile/faebryk-project-template/pkg/errors"
	"github.com/pterm/pterm"
)

// Console reads answers line by line from a reader, typically stdin
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

// NewConsole creates a console prompter. styled decorates the question and
// normally follows the run's reporter.
func NewConsole(in io.Reader, out io.Writer, styled bool) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		styled: styled,
	}
}

// Ask implements Prompter. Blank answers are not accepted; the question
// is repeated until something is typed.
func (c *Console) Ask(question string) (string, error) {
	for {
		label := question + ": "
		if c.styled {
			label = pterm.Bold.Sprint(question) + ": "
		}
		fmt.Fprint(c.out, label)

		line, err := c.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			fmt.Fprintln(c.out)
			if err == io.EOF {
				return "", errors.New(errors.ErrInterrupted, "input closed while waiting for an answer").
					WithDetail("question", question)
			}
			return "", errors.Wrap(err, errors.ErrInterrupted, "cannot read answer")
		}

		answer := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(answer) == "" {
			continue
		}
		return answer, nil
	}
}
