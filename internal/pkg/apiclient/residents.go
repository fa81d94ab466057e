package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// ResidentInput is the body for creating a resident
type ResidentInput struct {
	HusbandName      string `json:"husband_name"`
	HusbandIDNumber  string `json:"husband_id_number"`
	WifeName         string `json:"wife_name"`
	WifeIDNumber     string `json:"wife_id_number"`
	PhoneNumber      string `json:"phone_number"`
	NumFamilyMembers int    `json:"num_family_members"`
	Injuries         string `json:"injuries"`
	Diseases         string `json:"diseases"`
	DamageLevel      string `json:"damage_level"`
	Neighborhood     string `json:"neighborhood"`
	Notes            string `json:"notes"`
	ResidenceStatus  string `json:"residence_status,omitempty"`
}

// ResidentMatch is the result of a name plus identity lookup
type ResidentMatch struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListResidents returns every resident of the current tenant
func (c *Client) ListResidents(ctx context.Context) ([]records.Resident, error) {
	var residents []records.Resident
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/residents"}, &residents); err != nil {
		return nil, err
	}
	return residents, nil
}

// CreateResident registers a new household
func (c *Client) CreateResident(ctx context.Context, in ResidentInput) (*Message, error) {
	var msg Message
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/residents", body: in}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateResident applies a partial update to a resident
func (c *Client) UpdateResident(ctx context.Context, id int, fields map[string]any) (*Message, error) {
	var msg Message
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/api/residents/" + strconv.Itoa(id),
		route:  "/api/residents/{id}",
		body:   fields,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteResident removes a resident and its aid history
func (c *Client) DeleteResident(ctx context.Context, id int) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/residents/" + strconv.Itoa(id),
		route:  "/api/residents/{id}",
	}, nil)
}

// CheckResident reports whether a resident with any of the given identity
// numbers or phone already exists. Backends without the check endpoint
// answer 404, which is reported as "does not exist".
func (c *Client) CheckResident(ctx context.Context, husbandID, wifeID, phone string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/residents/check",
		query: url.Values{
			"husband_id_number": {husbandID},
			"wife_id_number":    {wifeID},
			"phone_number":      {phone},
		},
	}, &out)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Exists, nil
}

// SearchResident finds the resident with exactly this name and identity number.
// A missing resident yields an error matching ErrNotFound.
func (c *Client) SearchResident(ctx context.Context, name, idNumber string) (*ResidentMatch, error) {
	var match ResidentMatch
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/residents/search",
		query:  url.Values{"name": {name}, "id": {idNumber}},
	}, &match)
	if err != nil {
		return nil, err
	}
	if match.ID == 0 {
		return nil, &APIError{Method: http.MethodGet, Path: "/api/residents/search", Status: http.StatusNotFound, Message: "resident not found"}
	}
	return &match, nil
}

// ResidentStats returns the tenant-wide resident statistics
func (c *Client) ResidentStats(ctx context.Context) (*records.ResidentStats, error) {
	var stats records.ResidentStats
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/residents/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UploadResidents sends a spreadsheet to the server-side resident importer
func (c *Client) UploadResidents(ctx context.Context, filename string, r io.Reader) (*Message, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(filename))
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			_ = pw.CloseWithError(fmt.Errorf("failed to stream %s: %w", filename, err))
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	var msg Message
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/residents/import",
		rawBody:     pr,
		contentType: mw.FormDataContentType(),
	}, &msg)
	// Unblock the writer goroutine if the request ended early
	_ = pr.Close()
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
