package model

import (
	"time"

	"gorm.io/gorm"
)

// Tool types
const (
	ToolTypeReport      = "report"
	ToolTypeIntegration = "integration"
	ToolTypeQueryRunner = "query_runner"
	ToolTypeApp         = "app"
)

// Tool is a gated portal feature: a report, an integration, a query runner
// or an embedded app. Each tool is owned by exactly one client but may be
// shared with others through ClientTool rows.
type Tool struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(100)"`
	Slug           string         `json:"slug" gorm:"type:varchar(100);uniqueIndex"`
	Type           string         `json:"type" gorm:"type:varchar(20);not null"`
	Status         string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	ClientID       uint           `json:"client_id" gorm:"index;not null"`
	DBConnectionID *uint          `json:"db_connection_id,omitempty" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// IsActive reports whether the tool itself is enabled
func (t *Tool) IsActive() bool {
	return t.Status == StatusActive
}

// ClientTool links a tool to a client for visibility. Distinct from the
// owning Tool.ClientID; a shared tool carries one row per client it is
// visible to.
type ClientTool struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ClientID  uint      `json:"client_id" gorm:"index;not null;uniqueIndex:idx_client_tool"`
	ToolID    uint      `json:"tool_id" gorm:"index;not null;uniqueIndex:idx_client_tool"`
	CreatedAt time.Time `json:"created_at"`
}

// DBConnection points a tool at an external customer database. Queried only
// as an opaque pass-through data source.
type DBConnection struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	ClientID  uint           `json:"client_id" gorm:"index;not null"`
	DSN       string         `json:"-" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
