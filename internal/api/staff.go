package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/prepline/prepline/internal/model"
)

// ListDepartmentStaff retrieves the staff members of a department,
// optionally filtered by role.
func (c *Client) ListDepartmentStaff(
	ctx context.Context,
	departmentID string,
	role string,
) ([]model.StaffMember, error) {
	query := url.Values{}
	if role != "" {
		query.Set("role", role)
	}

	path := fmt.Sprintf("/departments/%s/staff/", departmentID)

	var raw json.RawMessage
	if err := c.Get(ctx, path, query, &raw); err != nil {
		return nil, fmt.Errorf("listing staff for department %s: %w", departmentID, err)
	}

	var records []StaffMember
	if _, err := decodeFlexibleList(raw, &records); err != nil {
		return nil, fmt.Errorf("listing staff for department %s: %w", departmentID, err)
	}

	staff := make([]model.StaffMember, 0, len(records))
	for _, r := range records {
		staff = append(staff, model.StaffMember{
			ID:        r.ID.String(),
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Username:  r.Username,
		})
	}
	return staff, nil
}
