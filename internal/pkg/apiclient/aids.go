package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// AidInput is the body for recording an aid disbursement
type AidInput struct {
	ResidentID int    `json:"resident_id"`
	AidType    string `json:"aid_type"`
	Date       string `json:"date"`
}

// ListAids returns every aid record of the current tenant
func (c *Client) ListAids(ctx context.Context) ([]records.Aid, error) {
	var aids []records.Aid
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/aids"}, &aids); err != nil {
		return nil, err
	}
	return aids, nil
}

// CreateAid records an aid disbursement and returns the stored record
func (c *Client) CreateAid(ctx context.Context, in AidInput) (*records.Aid, error) {
	var aid records.Aid
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/aids", body: in}, &aid); err != nil {
		return nil, err
	}
	return &aid, nil
}

// UpdateAid applies a partial update to an aid record
func (c *Client) UpdateAid(ctx context.Context, id int, fields map[string]any) (*Message, error) {
	var msg Message
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/api/aids/" + strconv.Itoa(id),
		route:  "/api/aids/{id}",
		body:   fields,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteAid removes an aid record
func (c *Client) DeleteAid(ctx context.Context, id int) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/aids/" + strconv.Itoa(id),
		route:  "/api/aids/{id}",
	}, nil)
}
