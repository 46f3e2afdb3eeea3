// Package theme holds the lipgloss styles used by the command output.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/humanai-workspace/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for section headers.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// PanelStyle wraps the dashboard summary.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// MutedStyle is used for secondary text such as timestamps and ids.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// UnreadStyle marks unread notifications.
var UnreadStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// SuccessStyle is used for confirmations.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// CategoryStyle returns a color-coded label style for a notification or
// recommendation category.
func CategoryStyle(c model.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch c {
	case model.CategoryLearning:
		return base.Foreground(ColorBlue)
	case model.CategoryWellness:
		return base.Foreground(ColorGreen)
	case model.CategoryProject:
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle colors a recommendation priority; higher is hotter.
func PriorityStyle(priority int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case priority >= 10:
		return base.Foreground(ColorRed)
	case priority >= 5:
		return base.Foreground(ColorYellow)
	case priority > 0:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// StatusStyle returns a color-coded style for a learning module status.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.ModuleInProgress:
		return base.Foreground(ColorYellow)
	case model.ModuleCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// ProgressBar renders pct as a bar of width cells.
func ProgressBar(pct, width int) string {
	if width <= 0 {
		return ""
	}
	pct = max(0, min(100, pct))
	filled := pct * width / 100
	return SuccessStyle.Render(strings.Repeat("█", filled)) +
		MutedStyle.Render(strings.Repeat("░", width-filled))
}
