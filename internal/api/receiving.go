package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/prepline/prepline/internal/model"
)

// ReceivingQuery holds the server-side list parameters for receiving
// records. Page is one-based, matching the backend's convention; the
// data table layer converts from its zero-based index at this boundary.
type ReceivingQuery struct {
	Page     int
	PageSize int

	// Ordering is the sort field name, prefixed with "-" for descending
	// (e.g. "-received_at").
	Ordering string

	Search string
}

// ReceivingPage is one page of receiving records with the total count
// reported by the backend.
type ReceivingPage struct {
	Records []model.ReceivingRecord
	Count   int
	HasNext bool
	HasPrev bool
}

// ListReceivingRecords retrieves a page of receiving records.
func (c *Client) ListReceivingRecords(
	ctx context.Context,
	q ReceivingQuery,
) (*ReceivingPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 25
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if q.Ordering != "" {
		query.Set("ordering", q.Ordering)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var env struct {
		Results  []ReceivingRecord `json:"results"`
		Count    int               `json:"count"`
		Next     *string           `json:"next"`
		Previous *string           `json:"previous"`
	}
	if err := c.Get(ctx, "/receiving-records/", query, &env); err != nil {
		return nil, fmt.Errorf("listing receiving records: %w", err)
	}

	records := make([]model.ReceivingRecord, 0, len(env.Results))
	for _, r := range env.Results {
		records = append(records, receivingToModel(r))
	}

	return &ReceivingPage{
		Records: records,
		Count:   env.Count,
		HasNext: env.Next != nil,
		HasPrev: env.Previous != nil,
	}, nil
}

// GetReceivingRecord retrieves a single receiving record by ID.
func (c *Client) GetReceivingRecord(
	ctx context.Context,
	id string,
) (*model.ReceivingRecord, error) {
	var r ReceivingRecord
	path := fmt.Sprintf("/receiving-records/%s/", id)
	if err := c.Get(ctx, path, nil, &r); err != nil {
		return nil, fmt.Errorf("getting receiving record %s: %w", id, err)
	}

	record := receivingToModel(r)
	return &record, nil
}

// receivingToModel converts a wire receiving record to the domain model.
func receivingToModel(r ReceivingRecord) model.ReceivingRecord {
	return model.ReceivingRecord{
		ID:          r.ID.String(),
		Supplier:    r.Supplier,
		Product:     r.Product,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Temperature: r.Temperature,
		ExpiryDate:  r.ExpiryDate.Time,
		ReceivedAt:  r.ReceivedAt.Time,
		Notes:       r.Notes,
	}
}
