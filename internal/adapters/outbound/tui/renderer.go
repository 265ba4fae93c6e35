package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devpractices/practices/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	typeNameStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderDetection formats a detection result: the winning type, then every
// type's normalized score with the indicators that matched.
func RenderDetection(result domain.DetectionResult) string {
	var b strings.Builder

	title := headerStyle.Render("practices")
	subtitle := dimStyle.Render("Project Type Detection")
	verdict := lipgloss.NewStyle().
		Bold(true).
		Foreground(confidenceColor(result.Confidence)).
		Render(fmt.Sprintf("%s  %d%%", result.ProjectType, percent(result.Confidence)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	for _, pt := range rankedTypes(result.Scores) {
		score := result.Scores[pt]
		name := typeNameStyle.Render(padRight(string(pt), 12))
		pct := dimStyle.Render(fmt.Sprintf("%3d%%", percent(score)))
		fmt.Fprintf(&b, "  %s %s  %s\n", name, coloredBar(score, 30), pct)
		for _, m := range result.Matched[pt] {
			fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("●"), faintStyle.Render(m))
		}
	}

	if result.ProjectType == domain.ProjectTypeGeneric {
		b.WriteString("\n  " + warnStyle.Render("No project type reached the confidence threshold.") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSources lists the layers of a resolution, lowest precedence first.
func RenderSources(sources []domain.ConfigSource) string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Sources") + "\n")
	for i, src := range sources {
		tier := padRight(string(src.Tier), 8)
		path := src.Path
		if path == "" {
			path = "built-in defaults"
		}
		fmt.Fprintf(&b, "    %s %s %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), titleStyle.Render(tier), fileStyle.Render(path))
	}
	return b.String()
}

// rankedTypes orders detected types by score, then by declaration order.
// Generic and zero scores are omitted.
func rankedTypes(scores map[domain.ProjectType]float64) []domain.ProjectType {
	var out []domain.ProjectType
	for _, pt := range domain.ValidProjectTypes {
		if pt != domain.ProjectTypeGeneric && scores[pt] > 0 {
			out = append(out, pt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return scores[out[i]] > scores[out[j]] })
	return out
}

func percent(f float64) int {
	return int(f*100 + 0.5)
}

func coloredBar(score float64, width int) string {
	filled := max(0, min(int(score*float64(width)+0.5), width))
	empty := width - filled

	color := confidenceColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func confidenceColor(score float64) lipgloss.Color {
	switch {
	case score >= 0.6:
		return success
	case score >= 0.3:
		return lipgloss.Color("#A3E635") // lime
	case score >= domain.DefaultConfidenceThreshold:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
