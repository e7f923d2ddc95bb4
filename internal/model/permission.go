package model

import (
	"time"
)

// PrincipalType tags the subject of a tool permission. The three constants
// below are the only values the API surface constructs; anything else fails
// IsValid and is rejected before it reaches the store.
type PrincipalType string

const (
	PrincipalUser   PrincipalType = "user"
	PrincipalGroup  PrincipalType = "group"
	PrincipalSector PrincipalType = "sector"
)

// IsValid reports whether the tag is one of the three known arms
func (p PrincipalType) IsValid() bool {
	switch p {
	case PrincipalUser, PrincipalGroup, PrincipalSector:
		return true
	}
	return false
}

// UserClientPermission grants a user direct access to a client. Grants are
// binary: changing scope means delete and recreate, never update.
type UserClientPermission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_client_perm"`
	ClientID  uint      `json:"client_id" gorm:"index;not null;uniqueIndex:idx_user_client_perm"`
	CreatedAt time.Time `json:"created_at"`
}

// UserGroupPermission grants a user membership of a group.
type UserGroupPermission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_group_perm"`
	GroupID   uint      `json:"group_id" gorm:"index;not null;uniqueIndex:idx_user_group_perm"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSectorPermission grants a user membership of a sector.
type UserSectorPermission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_sector_perm"`
	SectorID  uint      `json:"sector_id" gorm:"index;not null;uniqueIndex:idx_user_sector_perm"`
	CreatedAt time.Time `json:"created_at"`
}

// ToolPermission grants a tool to a principal (user, group or sector). This
// is a second grant path, independent of the client-level paths; all paths
// combine as a plain OR with no deny tier.
type ToolPermission struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	ToolID        uint          `json:"tool_id" gorm:"index;not null;uniqueIndex:idx_tool_perm"`
	PrincipalType PrincipalType `json:"principal_type" gorm:"type:varchar(10);not null;uniqueIndex:idx_tool_perm"`
	PrincipalID   uint          `json:"principal_id" gorm:"not null;uniqueIndex:idx_tool_perm"`
	CreatedAt     time.Time     `json:"created_at"`
}
