package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/theme"
)

// accentRune is the left accent column, colored by event kind.
const accentRune = "▎"

// statusDot is the status indicator rendered in the chip's top-right
// corner at every density.
const statusDot = "●"

var (
	initialsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite).
			Background(theme.ColorSubtle).
			Padding(0, 1)

	noteStyle = lipgloss.NewStyle().Foreground(theme.ColorGray)
)

// Chip renders the generic visual summary of one event at the given
// density, fitted to width terminal cells. Pure function of its inputs;
// unknown statuses and kinds degrade to neutral colors, never errors.
func Chip(ev model.Event, density Density, width int) string {
	switch density {
	case DensityDense:
		return chipTitleLine(ev, ev.Title, width)
	case DensityCompact:
		text := ev.Title
		if tr := TimeRange(ev); tr != "" {
			text += " " + tr
		}
		return chipTitleLine(ev, text, width)
	default:
		lines := []string{chipTitleLine(ev, ev.Title, width)}
		if secondary := secondaryRow(ev, width); secondary != "" {
			lines = append(lines, secondary)
		}
		return strings.Join(lines, "\n")
	}
}

// chipTitleLine renders "▎Title …padding… ●" with the accent colored by
// kind and the dot colored by status.
func chipTitleLine(ev model.Event, text string, width int) string {
	accent := lipgloss.NewStyle().
		Foreground(theme.KindColor(string(ev.Kind))).
		Render(accentRune)
	dot := lipgloss.NewStyle().
		Foreground(theme.StatusColor(ev.Status)).
		Render(statusDot)

	// Accent and dot each take one cell; one cell of gap before the dot.
	avail := width - 3
	if avail < 1 {
		avail = 1
	}
	title := truncate(text, avail)

	gap := avail - lipgloss.Width(title)
	if gap < 0 {
		gap = 0
	}

	return accent + title + strings.Repeat(" ", gap+1) + dot
}

// secondaryRow renders the full-density detail row: time range,
// assignee initials badge, and a notes-count indicator, each shown only
// when the respective data is present.
func secondaryRow(ev model.Event, width int) string {
	var parts []string

	if tr := TimeRange(ev); tr != "" {
		parts = append(parts, noteStyle.Render(tr))
	}
	if ini := ev.Initials(); ini != "" {
		parts = append(parts, initialsStyle.Render(ini))
	}
	if ev.NotesCount > 0 {
		parts = append(parts, noteStyle.Render(fmt.Sprintf("✎%d", ev.NotesCount)))
	}

	if len(parts) == 0 {
		return ""
	}

	row := " " + strings.Join(parts, " ")
	if lipgloss.Width(row) > width {
		row = truncate(row, width)
	}
	return row
}

// ChipSummary is the hover/tooltip content: title and status together.
func ChipSummary(ev model.Event) string {
	if ev.Status == "" {
		return ev.Title
	}
	return ev.Title + " · " + ev.Status
}

// TimeRange formats the event's interval as "15:04-16:00". All-day
// events have no time range; zero-duration events show only the start.
func TimeRange(ev model.Event) string {
	if ev.AllDay || ev.Start.IsZero() {
		return ""
	}
	if ev.ZeroDuration() {
		return ev.Start.Format("15:04")
	}
	return ev.Start.Format("15:04") + "-" + ev.End.Format("15:04")
}

// BatchLine formats a production run's batch size and yield unit, e.g.
// "20 kg". Returns "" when either is absent.
func BatchLine(ev model.Event) string {
	if ev.BatchSize == 0 || ev.YieldUnit == "" {
		return ""
	}
	return strconv.FormatFloat(ev.BatchSize, 'f', -1, 64) + " " + ev.YieldUnit
}

// truncate shortens s to at most max terminal cells, appending an
// ellipsis when anything was cut.
func truncate(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
