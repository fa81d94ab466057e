package apiclient

import (
	"context"
	"net/http"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// ListNotifications returns the tenant's audit notifications, newest first
func (c *Client) ListNotifications(ctx context.Context) ([]records.Notification, error) {
	var notifications []records.Notification
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/notifications"}, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationsRead clears the "new" flag on every notification
func (c *Client) MarkNotificationsRead(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/api/notifications/mark-read"}, nil)
}
