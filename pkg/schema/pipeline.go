package schema

import "strings"

const (
	// identifierSeparator is rewritten by the identifier step
	identifierSeparator = "-"

	// identifierReplacement is what the separator becomes
	identifierReplacement = "_"
)

// Step is one pure normalization pass over a working value
type Step struct {
	// Name appears in the change notice ("converting to <Name>")
	Name string

	// Silent steps never produce a notice
	Silent bool

	Apply func(string) string
}

// Pipeline returns the normalization steps for v in the order they run:
// transform, lower case, identifier.
func (v VariableSpec) Pipeline() []Step {
	var steps []Step
	if v.Transform != nil {
		steps = append(steps, Step{Name: "transform", Silent: true, Apply: v.Transform})
	}
	if v.LowerCase {
		steps = append(steps, LowerCaseStep)
	}
	if v.ValidIdentifier {
		steps = append(steps, IdentifierStep)
	}
	return steps
}

// LowerCaseStep forces a value to lower case
var LowerCaseStep = Step{
	Name:  "lower case",
	Apply: strings.ToLower,
}

// IdentifierStep makes a value usable as a package identifier
var IdentifierStep = Step{
	Name: "python name",
	Apply: func(s string) string {
		return strings.ReplaceAll(s, identifierSeparator, identifierReplacement)
	},
}
