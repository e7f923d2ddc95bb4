package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Entity statuses shared by users, clients and tools
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents a portal user. Admins bypass per-tool grant checks but
// stay subject to client lifecycle filtering.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:'user'"` // 'admin' or 'user'
	Status    string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive reports whether the user may act at all
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
