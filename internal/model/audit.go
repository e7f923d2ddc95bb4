package model

import (
	"time"
)

// AuditLog is an append-only record of administrative mutations. The core
// only ever writes it; no decision reads it back.
type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Action    string    `json:"action" gorm:"type:varchar(50);not null"`
	Entity    string    `json:"entity" gorm:"type:varchar(50);not null"`
	EntityID  uint      `json:"entity_id" gorm:"index"`
	Details   string    `json:"details" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// All returns every model for migration at boot
func All() []interface{} {
	return []interface{}{
		&User{},
		&Client{},
		&Group{},
		&Sector{},
		&ClientOwner{},
		&Tool{},
		&ClientTool{},
		&DBConnection{},
		&UserClientPermission{},
		&UserGroupPermission{},
		&UserSectorPermission{},
		&ToolPermission{},
		&HelpdeskArea{},
		&Queue{},
		&QueueMember{},
		&Ticket{},
		&TicketMessage{},
		&HelpdeskNotification{},
		&AuditLog{},
	}
}
