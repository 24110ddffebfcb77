// Package vars describes the template variables without running a setup
package vars

import (
	"fmt"
	"strings"

	"github.com/atopile/faebryk-project-template/pkg/cache"
	"github.com/atopile/faebryk-project-template/pkg/logging"
	"github.com/atopile/faebryk-project-template/pkg/schema"
)

// List renders the variables of s as a markdown table. When store is not
// nil its cached values are shown next to each variable.
func List(s *schema.Schema, store cache.Store) (string, error) {
	logger := logging.GetLogger("commands.vars")

	var cached map[string]string
	if store != nil {
		values, err := store.Load()
		if err != nil {
			return "", err
		}
		cached = values
	}
	logger.Debug().Int("cached", len(cached)).Msg("Listing variables")

	var b strings.Builder
	b.WriteString("# Template variables\n\n")
	fmt.Fprintf(&b, "Placeholders are the key prefixed with %s.\n\n", code(s.Prefix()))
	b.WriteString("| Variable | Token | Description | Rules | Cached |\n")
	b.WriteString("|---|---|---|---|---|\n")

	for _, spec := range s.Vars() {
		token := s.Token(spec)
		value := "–"
		if v, ok := cached[token]; ok {
			value = code(v)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			spec.Key,
			code(token),
			cell(spec.Description),
			cell(rules(spec)),
			value,
		)
	}

	return b.String(), nil
}

func rules(spec schema.VariableSpec) string {
	var r []string
	for _, step := range spec.Pipeline() {
		if step.Silent {
			r = append(r, "computed")
			continue
		}
		r = append(r, step.Name)
	}
	if spec.Pattern != "" {
		r = append(r, "matches "+code(spec.Pattern))
	}
	if spec.NoPrompt {
		r = append(r, "not asked")
	}
	return strings.Join(r, ", ")
}

func code(s string) string {
	return "`" + s + "`"
}

// cell escapes text for a table cell
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
