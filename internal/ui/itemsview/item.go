package itemsview

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/prepline/prepline/internal/model"
)

// cleaningListItem wraps a model.CleaningItem so it can be used in a
// bubbles/list.
type cleaningListItem struct {
	item model.CleaningItem
}

// FilterValue returns the string used for fuzzy filtering.
func (i cleaningListItem) FilterValue() string {
	return i.item.Name
}

// Title returns the item name for the list.
func (i cleaningListItem) Title() string {
	return i.item.Name
}

// Description returns a short summary line for the list.
func (i cleaningListItem) Description() string {
	parts := []string{}
	if i.item.RecurrenceType != "" {
		parts = append(parts, i.item.RecurrenceType)
	} else {
		parts = append(parts, "one-off")
	}
	if i.item.Equipment != "" {
		parts = append(parts, i.item.Equipment)
	}
	if i.item.Description != "" {
		parts = append(parts, i.item.Description)
	}
	return strings.Join(parts, " | ")
}

// toListItems adapts a batch of cleaning items for the list widget.
func toListItems(items []model.CleaningItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = cleaningListItem{item: it}
	}
	return out
}
