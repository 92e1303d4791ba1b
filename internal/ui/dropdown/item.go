package dropdown

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvaldez/feedtray/internal/model"
	"github.com/nvaldez/feedtray/internal/text"
	"github.com/nvaldez/feedtray/internal/theme"
)

// bodySnippet caps how much of an item body appears on a dropdown line.
const bodySnippet = 60

// renderItem draws a single dropdown line: category icon, unread marker,
// title, body snippet, relative time. Backend text is sanitized before it
// touches the terminal.
func renderItem(item model.Item, selected bool, now time.Time) string {
	cs := theme.ForCategory(item.Category)
	icon := lipgloss.NewStyle().
		Foreground(cs.Foreground).
		Background(cs.Background).
		Render(cs.Icon)

	marker := " "
	if item.Unread {
		marker = "●"
	}

	title := text.Sanitize(item.Title)
	body := text.Truncate(text.Sanitize(item.Body), bodySnippet)
	when := theme.TimeStyle.Render(relativeTime(item.CreatedAt, now))

	line := fmt.Sprintf("%s %s %s - %s  %s", marker, icon, title, body, when)
	if !item.Unread {
		line = theme.DimmedStyle.Render(line)
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// relativeTime returns a human-friendly relative time string for rendered
// timestamps. Anything a week old or more shows as a date.
func relativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
