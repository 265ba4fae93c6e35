package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devpractices/practices/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	fileStyle          = lipgloss.NewStyle().Foreground(dim)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderValidation renders a validation report as a styled TUI string.
func RenderValidation(report domain.ValidationReport) string {
	var b strings.Builder

	status := passStyle.Bold(true).Render("VALID")
	if !report.Valid {
		status = failStyle.Bold(true).Render("INVALID")
	}
	counts := dimStyle.Render(fmt.Sprintf("%d errors · %d missing files", len(report.Errors), len(report.MissingFiles)))
	b.WriteString(boxStyle.Render(headerStyle.Render("practices") + "\n" + status + "\n" + counts))
	b.WriteString("\n")

	renderSection(&b, "Schema Errors", report.Errors, failStyle)
	renderSection(&b, "Missing Files", report.MissingFiles, warnStyle)
	renderSection(&b, "Skipped Files", report.Warnings, warnStyle)

	if len(report.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderSources(report.Sources))
	}

	if !report.Valid {
		b.WriteString("\n")
		b.WriteString("  " + separatorLine + "\n")
		b.WriteString("  " + hintStyle.Render("Fix the project file, or override locally with `practices set key=value`."))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderProblems lists semantic problems that did not block resolution.
func RenderProblems(problems []string) string {
	if len(problems) == 0 {
		return ""
	}
	var b strings.Builder
	renderSection(&b, "Problems", problems, warnStyle)
	return b.String()
}

func renderSection(b *strings.Builder, title string, items []string, bullet lipgloss.Style) {
	if len(items) == 0 {
		return
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n",
		sectionHeaderStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", len(items))),
	)
	for _, item := range items {
		fmt.Fprintf(b, "    %s %s\n", bullet.Render("●"), item)
	}
}
