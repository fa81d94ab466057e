package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_kv (
	origin TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (origin, key)
);
CREATE TABLE IF NOT EXISTS offline_queue (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	origin     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	last_error TEXT NOT NULL DEFAULT ''
);`

// Session keys
const (
	keyToken             = "token"
	keyLoggedIn          = "is_logged_in"
	keyUserID            = "user_id"
	keyUsername          = "username"
	keyRole              = "role"
	keyTenantID          = "tenant_id"
	keyExpiresAt         = "expires_at"
	keyNotificationCount = "notification_count"
	keyNotifications     = "notifications"
)

// SQLiteStore persists sessions in a local SQLite file.
type SQLiteStore struct {
	sqlDB *sql.DB
	vault TokenVault
}

// Option configures a SQLiteStore
type Option func(*SQLiteStore)

// WithVault keeps tokens in v instead of the database
func WithVault(v TokenVault) Option {
	return func(s *SQLiteStore) { s.vault = v }
}

// Open opens (creating if needed) the session database at path.
func Open(path string, opts ...Option) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &SQLiteStore{sqlDB: sqlDB}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the stored session for origin
func (s *SQLiteStore) Load(ctx context.Context, origin string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key, value FROM session_kv WHERE origin = ?`, origin)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer func() { _ = rows.Close() }()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := &Session{Origin: origin}
	sess.LoggedIn = kv[keyLoggedIn] == "true"
	sess.Username = kv[keyUsername]
	sess.Role = kv[keyRole]
	sess.UserID, _ = strconv.Atoi(kv[keyUserID])
	sess.TenantID, _ = strconv.Atoi(kv[keyTenantID])
	sess.NotificationCount, _ = strconv.Atoi(kv[keyNotificationCount])
	if v := kv[keyExpiresAt]; v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			sess.ExpiresAt = t
		}
	}
	if v := kv[keyNotifications]; v != "" {
		if err := json.Unmarshal([]byte(v), &sess.Notifications); err != nil {
			return nil, fmt.Errorf("decode cached notifications: %w", err)
		}
	}

	if s.vault != nil {
		token, err := s.vault.Get(origin)
		if err != nil {
			return nil, err
		}
		sess.AccessToken = token
	} else {
		sess.AccessToken = kv[keyToken]
	}
	return sess, nil
}

// Save replaces the stored session for sess.Origin
func (s *SQLiteStore) Save(ctx context.Context, sess *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sess == nil || sess.Origin == "" {
		return fmt.Errorf("session origin is required")
	}

	notifications, err := json.Marshal(sess.Notifications)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	kv := map[string]string{
		keyLoggedIn:          strconv.FormatBool(sess.LoggedIn),
		keyUserID:            strconv.Itoa(sess.UserID),
		keyUsername:          sess.Username,
		keyRole:              sess.Role,
		keyTenantID:          strconv.Itoa(sess.TenantID),
		keyNotificationCount: strconv.Itoa(sess.NotificationCount),
		keyNotifications:     string(notifications),
	}
	if !sess.ExpiresAt.IsZero() {
		kv[keyExpiresAt] = sess.ExpiresAt.UTC().Format(time.RFC3339)
	}
	if s.vault != nil {
		if sess.AccessToken != "" {
			if err := s.vault.Put(sess.Origin, sess.AccessToken); err != nil {
				return err
			}
		}
	} else {
		kv[keyToken] = sess.AccessToken
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_kv WHERE origin = ?`, sess.Origin); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	for k, v := range kv {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_kv (origin, key, value) VALUES (?, ?, ?)`,
			sess.Origin, k, v,
		); err != nil {
			return fmt.Errorf("save session key %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Clear removes every stored key for origin, including a vaulted token
func (s *SQLiteStore) Clear(ctx context.Context, origin string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM session_kv WHERE origin = ?`, origin); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if s.vault != nil {
		return s.vault.Delete(origin)
	}
	return nil
}
