package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrorResponse is the backend's JSON error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ID accepts both string and numeric identifiers, which the backend
// mixes across endpoints, and exposes them uniformly as strings.
type ID string

// UnmarshalJSON decodes a string or number into an ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as a string.
func (id ID) String() string { return string(id) }

// Timestamp accepts the backend's timestamp spellings (RFC 3339 with or
// without zone, and minute-precision local forms like
// "2024-01-10T08:00").
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// UnmarshalJSON parses a timestamp string, tolerating null and "".
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		if string(data) == "null" {
			t.Time = time.Time{}
			return nil
		}
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// ListEnvelope is the paginated list response shape
// {results, count, next, previous}. Some list endpoints instead return
// a bare JSON array; decodeFlexibleList handles both.
type ListEnvelope struct {
	Results  json.RawMessage `json:"results"`
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
}

// decodeFlexibleList unmarshals a list endpoint body that is either a
// bare array or a {results, count} envelope into out (a pointer to a
// slice), returning the total count. For bare arrays the count is the
// slice length.
func decodeFlexibleList(data json.RawMessage, out interface{}) (int, error) {
	trimmed := firstNonSpace(data)
	if trimmed == '[' {
		if err := json.Unmarshal(data, out); err != nil {
			return 0, fmt.Errorf("decoding list body: %w", err)
		}
		return sliceLen(out), nil
	}

	var env ListEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("decoding list envelope: %w", err)
	}
	if len(env.Results) > 0 {
		if err := json.Unmarshal(env.Results, out); err != nil {
			return 0, fmt.Errorf("decoding list results: %w", err)
		}
	}
	return env.Count, nil
}

// firstNonSpace returns the first non-whitespace byte of data, or 0.
func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// sliceLen returns the length of the slice out points at. out must be a
// pointer to a slice of one of the wire record types.
func sliceLen(out interface{}) int {
	switch v := out.(type) {
	case *[]CleaningItem:
		return len(*v)
	case *[]CleaningTask:
		return len(*v)
	case *[]ProductionRun:
		return len(*v)
	case *[]ReceivingRecord:
		return len(*v)
	case *[]StaffMember:
		return len(*v)
	default:
		return 0
	}
}

// CleaningItem is the wire shape of a managed cleaning definition.
type CleaningItem struct {
	ID             ID        `json:"id"`
	DepartmentID   ID        `json:"department_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	RecurrenceType string    `json:"recurrence_type"`
	Equipment      string    `json:"equipment"`
	AssigneeID     ID        `json:"assignee_id"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
}

// CleaningTask is the wire shape of a scheduled cleaning task instance
// from the cleaning schedule feed.
type CleaningTask struct {
	ID             ID        `json:"id"`
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	Start          Timestamp `json:"start"`
	End            Timestamp `json:"end"`
	AllDay         bool      `json:"all_day"`
	Status         string    `json:"status"`
	Assignee       string    `json:"assignee"`
	AssigneeID     ID        `json:"assignee_id"`
	NotesCount     int       `json:"notes_count"`
	RecurrenceType string    `json:"recurrence_type"`
	Equipment      string    `json:"equipment"`
	Description    string    `json:"description"`
}

// ProductionRun is the wire shape of a recipe production schedule entry.
type ProductionRun struct {
	ID         ID        `json:"id"`
	RecipeName string    `json:"recipe_name"`
	Title      string    `json:"title"`
	Start      Timestamp `json:"start"`
	End        Timestamp `json:"end"`
	AllDay     bool      `json:"all_day"`
	Status     string    `json:"status"`
	Assignee   string    `json:"assignee"`
	AssigneeID ID        `json:"assignee_id"`
	NotesCount int       `json:"notes_count"`
	BatchSize  float64   `json:"batch_size"`
	YieldUnit  string    `json:"yield_unit"`
	Equipment  string    `json:"equipment"`
	Description string   `json:"description"`
}

// ReceivingRecord is the wire shape of a goods-received entry.
type ReceivingRecord struct {
	ID          ID        `json:"id"`
	Supplier    string    `json:"supplier"`
	Product     string    `json:"product"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Temperature float64   `json:"temperature"`
	ExpiryDate  Timestamp `json:"expiry_date"`
	ReceivedAt  Timestamp `json:"received_at"`
	Notes       string    `json:"notes"`
}

// StaffMember is the wire shape of a department staff entry.
type StaffMember struct {
	ID        ID     `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}
