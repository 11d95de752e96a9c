package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// ListProductionSchedule retrieves the recipe production runs scheduled
// within [start, end).
func (c *Client) ListProductionSchedule(
	ctx context.Context,
	start, end time.Time,
) ([]ProductionRun, error) {
	query := url.Values{}
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", end.Format(time.RFC3339))

	var raw json.RawMessage
	if err := c.Get(ctx, "/recipeschedule/", query, &raw); err != nil {
		return nil, fmt.Errorf("listing production schedule: %w", err)
	}

	var records []ProductionRun
	if _, err := decodeFlexibleList(raw, &records); err != nil {
		return nil, fmt.Errorf("listing production schedule: %w", err)
	}
	return records, nil
}

// RescheduleProductionRun persists a moved or resized production run.
func (c *Client) RescheduleProductionRun(
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

	path := fmt.Sprintf("/recipeschedule/%s/", id)
	if err := c.Patch(ctx, path, body, nil); err != nil {
		return fmt.Errorf("rescheduling production run %s: %w", id, err)
	}
	return nil
}
