package model

import (
	"time"

	"gorm.io/gorm"
)

// Ticket statuses. Transitions are owned by the ticket mutation API; queue
// routing never depends on them.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
	TicketCancelled  = "cancelled"
)

// HelpdeskArea is a node in a client's managed-area tree. Each area has a
// designated manager and zero or more queues.
type HelpdeskArea struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	ClientID  uint           `json:"client_id" gorm:"index;not null"`
	ParentID  *uint          `json:"parent_id,omitempty" gorm:"index"`
	ManagerID uint           `json:"manager_id" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Queue receives tickets. Membership determines who can receive tickets for
// the queue's area. Every active client must keep exactly one default queue.
type Queue struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	ClientID  uint           `json:"client_id" gorm:"index;not null"`
	AreaID    *uint          `json:"area_id,omitempty" gorm:"index"`
	IsDefault bool           `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// QueueMember enrolls a user in a queue.
type QueueMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	QueueID   uint      `json:"queue_id" gorm:"index;not null;uniqueIndex:idx_queue_member"`
	UserID    uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_queue_member"`
	CreatedAt time.Time `json:"created_at"`
}

// Ticket is a helpdesk request. Tickets are never deleted.
type Ticket struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ClientID  uint      `json:"client_id" gorm:"index;not null"`
	AreaID    *uint     `json:"area_id,omitempty" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index;not null"` // requester
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	Subject   string    `json:"subject" gorm:"type:varchar(200)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []TicketMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID"`
}

// TicketMessage is one entry in a ticket's thread.
type TicketMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TicketID  uint      `json:"ticket_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
