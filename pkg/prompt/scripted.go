package prompt

import (
	"github.com/atopile/faebryk-project-template/pkg/errors"
)

// Scripted answers questions from a fixed list, in order
type Scripted struct {
	answers []string

	// Asked records every question in the order it was asked
	Asked []string
}

// NewScripted creates a prompter that replays answers
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Ask implements Prompter
func (s *Scripted) Ask(question string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.answers) == 0 {
		return "", errors.New(errors.ErrInterrupted, "no more scripted answers").
			WithDetail("question", question)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Remaining returns the number of unused answers
func (s *Scripted) Remaining() int {
	return len(s.answers)
}
