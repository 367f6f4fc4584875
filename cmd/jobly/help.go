package main

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/jobly/internal/ui"
)

// helpRule restyles every match of re in cobra's plain help text.
type helpRule struct {
	re    *regexp.Regexp
	style func(groups []string) string
}

var helpRules = []helpRule{
	// Section headers such as "Data:" or "Flags:".
	{regexp.MustCompile(`(?m)^([A-Z][^\n]*:)[ \t]*$`), func(g []string) string {
		return ui.RenderAccent(g[1])
	}},
	// Subcommand names in the command listing.
	{regexp.MustCompile(`(?m)^(  )(\S+)(  )`), func(g []string) string {
		return g[1] + ui.RenderCommand(g[2]) + g[3]
	}},
	// Flag value types, e.g. "--min-salary int".
	{regexp.MustCompile(`(--?\S+\s+)(string|int|duration|stringArray)\b`), func(g []string) string {
		return g[1] + ui.RenderMuted(g[2])
	}},
	// Quoted defaults such as (default "http://localhost:8080").
	{regexp.MustCompile(`\(default "[^"]*"\)`), func(g []string) string {
		return ui.RenderMuted(g[0])
	}},
}

// colorizedHelpFunc renders cobra's usage text, styled when stdout supports it.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if !ui.ShouldUseColor() {
			_ = cmd.Usage()
			return
		}

		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(out)
		fmt.Fprint(out, colorizeHelpOutput(buf.String()))
	}
}

func colorizeHelpOutput(s string) string {
	for _, rule := range helpRules {
		s = rule.re.ReplaceAllStringFunc(s, func(match string) string {
			return rule.style(rule.re.FindStringSubmatch(match))
		})
	}
	return s
}
