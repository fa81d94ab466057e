package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// QueuedItem is a record waiting to be sent to the backend
type QueuedItem struct {
	ID        int64           `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	LastError string          `json:"last_error,omitempty"`
}

// Enqueue appends payload to the offline queue of origin
func (s *SQLiteStore) Enqueue(ctx context.Context, origin, kind string, payload any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode queued %s: %w", kind, err)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO offline_queue (origin, kind, payload, created_at) VALUES (?, ?, ?, ?)`,
		origin, kind, string(data), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("enqueue %s: %w", kind, err)
	}
	return res.LastInsertId()
}

// Pending returns queued items of kind for origin in insertion order
func (s *SQLiteStore) Pending(ctx context.Context, origin, kind string) ([]QueuedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, kind, payload, created_at, last_error FROM offline_queue
		 WHERE origin = ? AND kind = ? ORDER BY id`,
		origin, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []QueuedItem
	for rows.Next() {
		var (
			item    QueuedItem
			payload string
			created int64
		)
		if err := rows.Scan(&item.ID, &item.Kind, &payload, &created, &item.LastError); err != nil {
			return nil, fmt.Errorf("scan queue: %w", err)
		}
		item.Payload = json.RawMessage(payload)
		item.CreatedAt = time.UnixMilli(created).UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}

// Dequeue removes a sent item
func (s *SQLiteStore) Dequeue(ctx context.Context, id int64) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM offline_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("dequeue %d: %w", id, err)
	}
	return nil
}

// MarkFailed records the last send error of an item, leaving it queued
func (s *SQLiteStore) MarkFailed(ctx context.Context, id int64, msg string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `UPDATE offline_queue SET last_error = ? WHERE id = ?`, msg, id); err != nil {
		return fmt.Errorf("mark queue item %d: %w", id, err)
	}
	return nil
}
