package calendar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/theme"
)

var (
	recurrenceBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorTeal)

	unknownLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorGray)
)

// RenderEvent routes a canonical event to its kind-specific content
// renderer. The density is derived from the view name. Events with an
// unrecognized kind take the fallback path; this function never fails
// on malformed records.
func RenderEvent(ev model.Event, view ViewName, width int) string {
	density := DensityFor(view)

	switch ev.Kind {
	case model.KindCleaning:
		return renderCleaning(ev, density, width)
	case model.KindRecipe:
		return renderRecipe(ev, view, density, width)
	default:
		return renderUnknown(ev, density, width)
	}
}

// renderCleaning adds the recurrence badge to the generic chip at full
// density. Dense and compact renderings stay title-only to fit their
// slots.
func renderCleaning(ev model.Event, density Density, width int) string {
	chip := Chip(ev, density, width)
	if density != DensityFull || ev.RecurrenceBadge == "" {
		return chip
	}
	return chip + "\n " + recurrenceBadgeStyle.Render(ev.RecurrenceBadge)
}

// renderRecipe adds the batch-size/yield line on non-month views.
func renderRecipe(ev model.Event, view ViewName, density Density, width int) string {
	chip := Chip(ev, density, width)
	if view == ViewMonth {
		return chip
	}
	batch := BatchLine(ev)
	if batch == "" {
		return chip
	}
	return chip + "\n " + noteStyle.Render(truncate(batch, width-1))
}

// renderUnknown shows the raw title under a generic label so a
// malformed record is visibly distinct but never takes down the
// calendar.
func renderUnknown(ev model.Event, density Density, width int) string {
	label := unknownLabelStyle.Render(truncate("Unknown Event Type", width))
	if density == DensityDense {
		return label
	}

	lines := []string{label}
	if ev.Title != "" {
		lines = append(lines, " "+truncate(ev.Title, width-1))
	}
	return strings.Join(lines, "\n")
}
