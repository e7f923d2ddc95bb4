package model

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a tenant. A client owns groups, tools, external DB
// connections and helpdesk areas. Soft deletion or an inactive status hides
// the client and everything scoped under it from every visibility result,
// even while grant rows remain in the store.
type Client struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);uniqueIndex"`
	Status    string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsActive reports whether the client is visible at read time
func (c *Client) IsActive() bool {
	return c.Status == StatusActive && !c.DeletedAt.Valid
}

// Group aggregates sectors under a client. Every group must always point at
// a client; removing a client requires reassigning its groups first.
type Group struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	ClientID  uint           `json:"client_id" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// Sector belongs to a group, and transitively to a client.
type Sector struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	GroupID   uint           `json:"group_id" gorm:"index;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Group Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`
}

// ClientOwner marks a user as an owner of a client. Administrative
// bookkeeping only; ownership does not grant tool access.
type ClientOwner struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ClientID  uint      `json:"client_id" gorm:"index;not null;uniqueIndex:idx_client_owner"`
	UserID    uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_client_owner"`
	CreatedAt time.Time `json:"created_at"`
}
