package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nrfta/feed-go/coordinator"
	"github.com/nrfta/feed-go/listing"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	urgentStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// renderFeed draws the accumulated list of one feed.
func renderFeed(state coordinator.State[listing.Listing]) string {
	var b strings.Builder

	more := "end of feed"
	if state.HasMore {
		more = "more available"
	}
	b.WriteString(titleStyle.Render(strings.ToUpper(string(state.Kind))))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %d of %d, page %d, %s",
		len(state.Items), state.TotalCount, state.CurrentPage, more)))
	b.WriteString("\n")

	if len(state.Highlights) > 0 {
		titles := make([]string, len(state.Highlights))
		for i, h := range state.Highlights {
			titles[i] = h.Title
		}
		b.WriteString(highlightStyle.Render("highlights: " + strings.Join(titles, ", ")))
		b.WriteString("\n")
	}

	for _, l := range state.Items {
		b.WriteString(renderListing(l))
		b.WriteString("\n")
	}
	if len(state.Items) == 0 {
		b.WriteString(labelStyle.Render("no listings"))
		b.WriteString("\n")
	}

	for _, err := range []error{state.LoadMoreErr, state.HighlightsErr} {
		if err != nil {
			b.WriteString(errorStyle.Render(err.Error()))
			b.WriteString("\n")
		}
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderListing(l listing.Listing) string {
	line := fmt.Sprintf("#%-4d %-32s %s  %d/h", l.ID, l.Title, l.StartDate, l.PayPerHour)
	if l.Urgent {
		return urgentStyle.Render("! ") + line
	}
	return "  " + line
}
