package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// ChildInput is the body for registering a child
type ChildInput struct {
	Name         string `json:"name"`
	IDNumber     string `json:"id_number"`
	BirthDate    string `json:"birth_date"`
	Age          int    `json:"age"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	BenefitType  string `json:"benefit_type"`
	BenefitCount int    `json:"benefit_count"`
}

// AssistanceInput is the body for recording assistance given to a child
type AssistanceInput struct {
	ChildID   int    `json:"child_id"`
	HelpType  string `json:"help_type"`
	OtherHelp string `json:"other_help,omitempty"`
}

// ListChildren returns every child of the current tenant
func (c *Client) ListChildren(ctx context.Context) ([]records.Child, error) {
	var children []records.Child
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/children"}, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// CreateChild registers a child and returns the stored record
func (c *Client) CreateChild(ctx context.Context, in ChildInput) (*records.Child, error) {
	var child records.Child
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/children", body: in}, &child); err != nil {
		return nil, err
	}
	return &child, nil
}

// UpdateChild applies a partial update to a child record
func (c *Client) UpdateChild(ctx context.Context, id int, fields map[string]any) (*records.Child, error) {
	var child records.Child
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/api/children/" + strconv.Itoa(id),
		route:  "/api/children/{id}",
		body:   fields,
	}, &child)
	if err != nil {
		return nil, err
	}
	return &child, nil
}

// DeleteChild removes a child. The backend keys deletion by identity number.
func (c *Client) DeleteChild(ctx context.Context, idNumber string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/children/" + url.PathEscape(idNumber),
		route:  "/api/children/{id_number}",
	}, nil)
}

// AddAssistance records assistance for a child and bumps its benefit count
func (c *Client) AddAssistance(ctx context.Context, in AssistanceInput) (*Message, error) {
	var msg Message
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/assistance", body: in}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// LastAssistance returns the most recent assistance for a child.
// A child with no assistance yields an error matching ErrNotFound.
func (c *Client) LastAssistance(ctx context.Context, childID int) (*records.LastAssistance, error) {
	var last records.LastAssistance
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/children/" + strconv.Itoa(childID) + "/last_assistance",
		route:  "/api/children/{id}/last_assistance",
	}, &last)
	if err != nil {
		return nil, err
	}
	return &last, nil
}
