package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"type-duplicate/internal/diagnostic"
)

var severityColors = map[diagnostic.DiagnosticSeverity]*color.Color{
	diagnostic.DiagnosticError:   color.New(color.FgRed, color.Bold),
	diagnostic.DiagnosticWarning: color.New(color.FgYellow, color.Bold),
	diagnostic.DiagnosticInfo:    color.New(color.FgCyan),
}

// printDiagnostics writes every diagnostic, most severe first, followed by
// a summary line when there are errors or warnings.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		severityColors[d.Severity].Fprint(w, d.Severity.String())
		fmt.Fprintf(w, ": %s\n", d)

		for _, s := range d.Suggestions {
			fmt.Fprintf(w, "\thint: %s\n", s)
		}
	}

	if n := len(diags.Errors) + len(diags.Warnings); n > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(diags.Errors), len(diags.Warnings))
	}
}
