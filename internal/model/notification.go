package model

import (
	"time"
)

// Notification events
const (
	EventTicketCreated = "ticket_created"
	EventNewMessage    = "new_message"
	EventStatusChanged = "status_changed"
)

// HelpdeskNotification records one delivery per (recipient, ticket, event).
// The unique index backs the conflict-ignore upsert that keeps duplicate
// events from producing duplicate rows. ReadAt null means unread; rows are
// never deleted, only marked read.
type HelpdeskNotification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_notification_event"`
	TicketID  uint       `json:"ticket_id" gorm:"index;not null;uniqueIndex:idx_notification_event"`
	Event     string     `json:"event" gorm:"type:varchar(50);not null;uniqueIndex:idx_notification_event"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsRead reports whether the notification has been seen
func (n *HelpdeskNotification) IsRead() bool {
	return n.ReadAt != nil
}
