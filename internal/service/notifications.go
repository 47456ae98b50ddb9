package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
)

// NotificationQuery selects and pages the notification feed. Read narrows
// to read or unread entries when set.
type NotificationQuery struct {
	Read  *bool
	Page  int
	Limit int
}

// NotificationEvent describes a feed change delivered to subscribers.
type NotificationEvent struct {
	Kind         string
	Notification *domain.Notification
}

// Subscriber receives feed change events. Panics in a subscriber are
// contained; delivery to the rest continues.
type Subscriber func(NotificationEvent)

// Notifications manages the in-app notification feed. New notifications are
// additionally pushed through the external channel best-effort.
type Notifications struct {
	records *Records[domain.Notification]
	channel ports.NotificationChannel
	log     *slog.Logger

	mu          sync.Mutex
	subscribers map[int]Subscriber
	nextSub     int
}

// NewNotifications builds the notification service. channel may be nil.
func NewNotifications(store ports.RecordStore, channel ports.NotificationChannel, log *slog.Logger) *Notifications {
	records := NewRecords[domain.Notification](store, "notification_")
	records.Defaults = func(n *domain.Notification) {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now().UTC()
		}
		if n.Priority == "" {
			n.Priority = "normal"
		}
		n.Read = false
		n.ReadAt = nil
	}
	records.Validate = func(n *domain.Notification) error {
		if strings.TrimSpace(n.Title) == "" {
			return &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		return nil
	}
	return &Notifications{
		records:     records,
		channel:     channel,
		log:         log,
		subscribers: map[int]Subscriber{},
	}
}

// Create stores a new notification, pushes it through the external channel
// and notifies subscribers.
func (s *Notifications) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if err := s.records.Create(ctx, notification.ID, notification); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if s.channel != nil {
		if err := s.channel.Push(ctx, notification.Title, notification.Message); err != nil {
			s.log.Warn("notification push failed", "notification", notification.ID, "error", err)
		}
	}
	s.publish(NotificationEvent{Kind: "created", Notification: notification})
	return notification, nil
}

// List returns the notification feed, newest first.
func (s *Notifications) List(ctx context.Context, q NotificationQuery) (domain.Page[domain.Notification], error) {
	all, err := s.records.List(ctx)
	if err != nil {
		return domain.Page[domain.Notification]{}, fmt.Errorf("list notifications: %w", err)
	}

	items := all
	if q.Read != nil {
		items = make([]domain.Notification, 0, len(all))
		for _, n := range all {
			if n.Read == *q.Read {
				items = append(items, n)
			}
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return paginate(items, q.Page, q.Limit), nil
}

// MarkRead flags one notification as read, domain.ErrNotFound when absent.
func (s *Notifications) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	notification, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark read: %w", err)
	}
	if !notification.Read {
		now := time.Now().UTC()
		notification.Read = true
		notification.ReadAt = &now
		if err := s.records.Put(ctx, id, notification); err != nil {
			return nil, fmt.Errorf("mark read: %w", err)
		}
	}
	s.publish(NotificationEvent{Kind: "updated", Notification: notification})
	return notification, nil
}

// MarkAllRead flags the whole feed as read and returns how many entries
// changed.
func (s *Notifications) MarkAllRead(ctx context.Context) (int, error) {
	all, err := s.records.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	now := time.Now().UTC()
	changed := 0
	for i := range all {
		if all[i].Read {
			continue
		}
		all[i].Read = true
		all[i].ReadAt = &now
		if err := s.records.Put(ctx, all[i].ID, &all[i]); err != nil {
			return changed, fmt.Errorf("mark all read: %w", err)
		}
		changed++
	}
	if changed > 0 {
		s.publish(NotificationEvent{Kind: "batch_updated"})
	}
	return changed, nil
}

// Delete removes a notification, domain.ErrNotFound when absent.
func (s *Notifications) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete notification: %w", err)
	}
	s.publish(NotificationEvent{Kind: "deleted", Notification: &domain.Notification{ID: id}})
	return nil
}

// UnreadCount counts the unread notifications.
func (s *Notifications) UnreadCount(ctx context.Context) (int, error) {
	all, err := s.records.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	count := 0
	for _, n := range all {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// Subscribe registers a feed listener and returns its unsubscribe func.
func (s *Notifications) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Notifications) publish(event NotificationEvent) {
	s.mu.Lock()
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("notification subscriber panicked", "panic", r)
				}
			}()
			fn(event)
		}()
	}
}
