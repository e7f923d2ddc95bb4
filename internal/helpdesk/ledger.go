package helpdesk

import (
	"context"

	"go.uber.org/zap"

	"portal-service/internal/cache"
	"portal-service/internal/model"
	"portal-service/internal/store"
)

// NotificationPageSize caps every notification listing
const NotificationPageSize = 50

// Ledger exposes read-state bookkeeping over the notification rows. Marking
// an already-read row is a no-op, so every operation here is idempotent.
type Ledger struct {
	store store.HelpdeskStore
	cache *cache.UnreadCounts
	log   *zap.Logger
}

// NewLedger creates a notification ledger. The cache may be nil.
func NewLedger(s store.HelpdeskStore, c *cache.UnreadCounts, log *zap.Logger) *Ledger {
	return &Ledger{store: s, cache: c, log: log}
}

// MarkRead marks every unread notification for the ticket as read and
// returns how many rows changed.
func (l *Ledger) MarkRead(ctx context.Context, userID, ticketID uint) (int64, error) {
	updated, err := l.store.MarkRead(ctx, userID, ticketID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		l.cache.Invalidate(ctx, userID)
	}
	return updated, nil
}

// MarkAllRead marks every unread notification for the user as read
func (l *Ledger) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	updated, err := l.store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		l.cache.Invalidate(ctx, userID)
	}
	return updated, nil
}

// UnreadCount returns the number of unread notifications for the user
func (l *Ledger) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if count, ok := l.cache.Get(ctx, userID); ok {
		return count, nil
	}

	count, err := l.store.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	l.cache.Set(ctx, userID, count)
	return count, nil
}

// ListNotifications returns the newest notifications first, capped at one
// page.
func (l *Ledger) ListNotifications(ctx context.Context, userID uint, unreadOnly bool) ([]model.HelpdeskNotification, error) {
	return l.store.ListNotifications(ctx, userID, unreadOnly, NotificationPageSize)
}
