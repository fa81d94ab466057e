package apiclient

import (
	"context"
	"net/http"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// LoginResult is the backend response to a successful login
type LoginResult struct {
	Success     bool           `json:"success"`
	Token       string         `json:"token"`
	Role        string         `json:"role"`
	Permissions map[string]any `json:"permissions"`
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/api/login",
		body:      map[string]string{"username": username, "password": password},
		anonymous: true,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUsers returns the accounts of the current tenant
func (c *Client) ListUsers(ctx context.Context) ([]records.User, error) {
	var users []records.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/users"}, &users); err != nil {
		return nil, err
	}
	return users, nil
}
