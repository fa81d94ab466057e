// Package notify polls the backend for audit notifications and keeps the
// unread count in the session cache.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alfurqan/aidctl/internal/pkg/logger"
	"github.com/alfurqan/aidctl/internal/pkg/records"
	"github.com/alfurqan/aidctl/internal/pkg/session"
)

// DefaultInterval is the polling period when none is configured
const DefaultInterval = time.Second

// Source is the subset of the API client the subscription needs
type Source interface {
	ListNotifications(ctx context.Context) ([]records.Notification, error)
	MarkNotificationsRead(ctx context.Context) error
}

// Update is delivered after every poll
type Update struct {
	Count         int
	Notifications []records.Notification
	// New holds notifications not seen in the previous poll
	New []records.Notification
	Err error
}

// Config configures a subscription
type Config struct {
	Source Source
	// Session receives the cached count and list. It must not be read
	// by other goroutines until the subscription is stopped.
	Session *session.Session
	// Store persists Session after each poll (optional)
	Store session.Store
	// Interval between polls (default: 1s)
	Interval time.Duration
	// Viewing marks every notification read as soon as it is fetched
	Viewing bool
}

// Subscription is a running poller
type Subscription struct {
	cfg     Config
	updates chan Update
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
	seen    map[int]struct{}
}

// Subscribe starts polling immediately and then every cfg.Interval until
// Stop is called or ctx is cancelled.
func Subscribe(ctx context.Context, cfg Config) (*Subscription, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("notification source is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		cfg:     cfg,
		updates: make(chan Update, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go s.run(ctx)
	return s, nil
}

// Updates returns the update channel. It is closed when the subscription ends.
func (s *Subscription) Updates() <-chan Update {
	return s.updates
}

// Stop ends the subscription and waits for the poller to exit. Safe to call more than once.
func (s *Subscription) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done is closed once the poller has exited
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.updates)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		s.publish(ctx, s.poll(ctx))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// poll fetches notifications once and updates the session cache
func (s *Subscription) poll(ctx context.Context) Update {
	items, err := s.cfg.Source.ListNotifications(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("Failed to fetch notifications", "error", err)
		}
		return Update{Count: s.cfg.Session.NotificationCount, Err: err}
	}

	if s.cfg.Viewing && records.CountNew(items) > 0 {
		if err := s.cfg.Source.MarkNotificationsRead(ctx); err != nil {
			logger.Warn("Failed to mark notifications read", "error", err)
		} else {
			for i := range items {
				items[i].IsNew = false
			}
		}
	}

	var fresh []records.Notification
	if s.seen != nil {
		for _, n := range items {
			if _, ok := s.seen[n.ID]; !ok {
				fresh = append(fresh, n)
			}
		}
	}
	s.seen = make(map[int]struct{}, len(items))
	for _, n := range items {
		s.seen[n.ID] = struct{}{}
	}

	s.cfg.Session.SetNotifications(items)
	if s.cfg.Store != nil {
		if err := s.cfg.Store.Save(ctx, s.cfg.Session); err != nil && ctx.Err() == nil {
			logger.Warn("Failed to cache notifications", "error", err)
		}
	}

	return Update{
		Count:         s.cfg.Session.NotificationCount,
		Notifications: items,
		New:           fresh,
	}
}

// publish delivers u, replacing an undelivered older update. New
// notifications of the replaced update are carried over.
func (s *Subscription) publish(ctx context.Context, u Update) {
	if ctx.Err() != nil {
		return
	}
	select {
	case s.updates <- u:
		return
	default:
	}
	select {
	case old := <-s.updates:
		u.New = append(old.New, u.New...)
	default:
	}
	select {
	case s.updates <- u:
	default:
	}
}
