package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/xlg-lang/xlg/pkg/diag"
)

// Styles mirror pkg/dang/errors.go's FormatWithHighlighting palette
// (red for errors, a dimmer tone for warnings, bold for the span), redone
// with lipgloss instead of raw ANSI escape constants.
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	spanStyle    = lipgloss.NewStyle().Faint(true)
	kindStyle    = lipgloss.NewStyle().Bold(true)
	hashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func diagnosticLine(d diag.Diagnostic) string {
	label := errorStyle.Render("error")
	if d.Severity == diag.SeverityWarning {
		label = warningStyle.Render("warning")
	}
	span := ""
	if !d.Span.Zero() {
		span = spanStyle.Render(fmt.Sprintf(" [%d:%d]", d.Span.Line, d.Span.Col))
	}
	return fmt.Sprintf("%s%s: %s (%s)", label, span, d.Message, kindStyle.Render(d.Kind.String()))
}

func styledHash(h fmt.Stringer) string {
	return hashStyle.Render(h.String())
}
