package schema

import (
	"strconv"
	"time"
)

// githubPattern accepts "<owner|org>/<repo>"
const githubPattern = `^[a-zA-Z0-9-]+/[a-zA-Z0-9-]+$`

// Default returns the variables of the project template. now supplies the
// copyright year; pass time.Now outside of tests.
func Default(now func() time.Time) *Schema {
	return MustNew(Prefix,
		VariableSpec{
			Key:             "project_name",
			Description:     "pip/package name of the project",
			LowerCase:       true,
			ValidIdentifier: true,
		},
		VariableSpec{
			Key:         "short_description",
			Description: "Small one-line description of the project",
		},
		VariableSpec{
			Key: "author",
			Description: "Appears in pip and license. Format 'Your Name <Your Email>'" +
				"(e.g 'John Doe <john@doe.net>')",
		},
		VariableSpec{
			Key:         "github",
			Description: "<owner|org>/<repo>",
			Pattern:     githubPattern,
		},
		VariableSpec{
			Key:         "gh_user",
			Description: "Your github username",
		},
		VariableSpec{
			Key:      "year",
			NoPrompt: true,
			Transform: func(string) string {
				return strconv.Itoa(now().Year())
			},
		},
	)
}
