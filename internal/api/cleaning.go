package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/prepline/prepline/internal/model"
)

// ListCleaningItems retrieves the cleaning definitions for a department.
func (c *Client) ListCleaningItems(
	ctx context.Context,
	departmentID string,
) ([]model.CleaningItem, error) {
	query := url.Values{}
	if departmentID != "" {
		query.Set("department_id", departmentID)
	}

	var raw json.RawMessage
	if err := c.Get(ctx, "/cleaningitems/", query, &raw); err != nil {
		return nil, fmt.Errorf("listing cleaning items: %w", err)
	}

	var records []CleaningItem
	if _, err := decodeFlexibleList(raw, &records); err != nil {
		return nil, fmt.Errorf("listing cleaning items: %w", err)
	}

	items := make([]model.CleaningItem, 0, len(records))
	for _, r := range records {
		items = append(items, cleaningItemToModel(r))
	}
	return items, nil
}

// CreateCleaningItem posts a new cleaning definition and returns the
// created item.
func (c *Client) CreateCleaningItem(
	ctx context.Context,
	item model.CleaningItem,
) (model.CleaningItem, error) {
	body := cleaningItemBody(item)

	var created CleaningItem
	if err := c.Post(ctx, "/cleaningitems/", body, &created); err != nil {
		return model.CleaningItem{}, fmt.Errorf("creating cleaning item: %w", err)
	}
	return cleaningItemToModel(created), nil
}

// UpdateCleaningItem patches an existing cleaning definition and
// returns the updated item.
func (c *Client) UpdateCleaningItem(
	ctx context.Context,
	item model.CleaningItem,
) (model.CleaningItem, error) {
	body := cleaningItemBody(item)

	var updated CleaningItem
	path := fmt.Sprintf("/cleaningitems/%s/", item.ID)
	if err := c.Patch(ctx, path, body, &updated); err != nil {
		return model.CleaningItem{}, fmt.Errorf("updating cleaning item %s: %w", item.ID, err)
	}
	return cleaningItemToModel(updated), nil
}

// DeleteCleaningItem removes a cleaning definition.
func (c *Client) DeleteCleaningItem(ctx context.Context, id string) error {
	path := fmt.Sprintf("/cleaningitems/%s/", id)
	if err := c.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting cleaning item %s: %w", id, err)
	}
	return nil
}

// ListCleaningSchedule retrieves the materialized cleaning task
// instances for a department within [start, end).
func (c *Client) ListCleaningSchedule(
	ctx context.Context,
	departmentID string,
	start, end time.Time,
) ([]CleaningTask, error) {
	query := url.Values{}
	if departmentID != "" {
		query.Set("department_id", departmentID)
	}
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", end.Format(time.RFC3339))

	var raw json.RawMessage
	if err := c.Get(ctx, "/cleaningschedule/", query, &raw); err != nil {
		return nil, fmt.Errorf("listing cleaning schedule: %w", err)
	}

	var records []CleaningTask
	if _, err := decodeFlexibleList(raw, &records); err != nil {
		return nil, fmt.Errorf("listing cleaning schedule: %w", err)
	}
	return records, nil
}

// RescheduleCleaningTask persists a moved or resized cleaning task.
func (c *Client) RescheduleCleaningTask(
	ctx context.Context,
	id string,
	start, end time.Time,
	assigneeID string,
) error {
	body := map[string]interface{}{
		"start": start.Format(time.RFC3339),
		"end":   end.Format(time.RFC3339),
	}
	if assigneeID != "" {
		body["assignee_id"] = assigneeID
	}

	path := fmt.Sprintf("/cleaningschedule/%s/", id)
	if err := c.Patch(ctx, path, body, nil); err != nil {
		return fmt.Errorf("rescheduling cleaning task %s: %w", id, err)
	}
	return nil
}

// cleaningItemToModel converts a wire cleaning item to the domain model.
func cleaningItemToModel(r CleaningItem) model.CleaningItem {
	return model.CleaningItem{
		ID:             r.ID.String(),
		DepartmentID:   r.DepartmentID.String(),
		Name:           r.Name,
		Description:    r.Description,
		RecurrenceType: r.RecurrenceType,
		Equipment:      r.Equipment,
		AssigneeID:     r.AssigneeID.String(),
		CreatedAt:      r.CreatedAt.Time,
		UpdatedAt:      r.UpdatedAt.Time,
	}
}

// cleaningItemBody builds the JSON body for create/update requests.
func cleaningItemBody(item model.CleaningItem) map[string]interface{} {
	body := map[string]interface{}{
		"department_id":   item.DepartmentID,
		"name":            item.Name,
		"description":     item.Description,
		"recurrence_type": item.RecurrenceType,
		"equipment":       item.Equipment,
	}
	if item.AssigneeID != "" {
		body["assignee_id"] = item.AssigneeID
	}
	return body
}
