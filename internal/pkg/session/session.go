// Package session keeps the authenticated session of a backend origin:
// the bearer token, the identity decoded from it and the cached
// notification state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alfurqan/aidctl/internal/pkg/records"
)

// ErrNotLoggedIn is returned when a token is needed but no session exists
var ErrNotLoggedIn = errors.New("not logged in")

// ErrExpired is returned when the stored token has passed its expiry
var ErrExpired = errors.New("session expired")

// Session is the explicit session state for one backend origin
type Session struct {
	Origin            string                 `json:"origin"`
	AccessToken       string                 `json:"-"`
	LoggedIn          bool                   `json:"logged_in"`
	UserID            int                    `json:"user_id,omitempty"`
	Username          string                 `json:"username,omitempty"`
	Role              string                 `json:"role,omitempty"`
	TenantID          int                    `json:"tenant_id,omitempty"`
	ExpiresAt         time.Time              `json:"expires_at,omitzero"`
	NotificationCount int                    `json:"notification_count"`
	Notifications     []records.Notification `json:"notifications,omitempty"`
}

// Claims is the payload of a backend-issued token
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	TenantID int    `json:"tenant_id"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the token payload without verifying the signature.
// The backend verifies every request; the client only reads identity and expiry.
func ParseClaims(token string) (*Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &claims, nil
}

// FromLogin builds a logged-in session from a login response
func FromLogin(origin, token, role string) (*Session, error) {
	claims, err := ParseClaims(token)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Origin:      origin,
		AccessToken: token,
		LoggedIn:    true,
		UserID:      claims.UserID,
		Username:    claims.Username,
		Role:        claims.Role,
		TenantID:    claims.TenantID,
	}
	if role != "" {
		s.Role = role
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return s, nil
}

// Expired reports whether the token expiry has passed
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Token returns the bearer token, so a Session can serve as the API client's token source
func (s *Session) Token(context.Context) (string, error) {
	if s == nil || !s.LoggedIn || s.AccessToken == "" {
		return "", ErrNotLoggedIn
	}
	if s.Expired(time.Now()) {
		return "", ErrExpired
	}
	return s.AccessToken, nil
}

// SetNotifications caches the latest notification list and its unread count
func (s *Session) SetNotifications(items []records.Notification) {
	s.Notifications = items
	s.NotificationCount = records.CountNew(items)
}

// Store persists sessions keyed by origin
type Store interface {
	// Load returns the session for origin, or a logged-out session if none is stored
	Load(ctx context.Context, origin string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context, origin string) error
}
