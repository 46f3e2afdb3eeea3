package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/theme"
)

func ago(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func printNotification(w io.Writer, now time.Time, n model.Notification) {
	marker := " "
	title := n.Title
	if !n.Read {
		marker = theme.UnreadStyle.Render("•")
		title = theme.UnreadStyle.Render(n.Title)
	}
	fmt.Fprintf(w, "%s %s %s %s\n", marker, theme.CategoryStyle(n.Category).Render(string(n.Category)), title,
		theme.MutedStyle.Render(fmt.Sprintf("(%s, %s)", n.ID, ago(now, n.CreatedAt))))
	if n.Description != "" {
		fmt.Fprintf(w, "    %s\n", n.Description)
	}
}

func printRecommendation(w io.Writer, r model.PriorityRecommendation) {
	fmt.Fprintf(w, "%s %s %s %s\n",
		theme.PriorityStyle(r.Priority).Render(fmt.Sprintf("[%d]", r.Priority)),
		theme.CategoryStyle(r.Category).Render(string(r.Category)),
		r.Title,
		theme.MutedStyle.Render(r.ID))
	if r.Description != "" {
		fmt.Fprintf(w, "    %s\n", r.Description)
	}
	if r.ActionText != "" {
		fmt.Fprintf(w, "    %s -> %s\n", r.ActionText, r.ActionRoute)
	}
}

func printModule(w io.Writer, m model.Module) {
	fmt.Fprintf(w, "%s %s %s %d%%  %s\n",
		theme.MutedStyle.Render(m.ID),
		m.Title,
		theme.ProgressBar(m.Progress(), 10),
		m.Progress(),
		theme.StatusStyle(m.Status).Render(m.Status))
}
