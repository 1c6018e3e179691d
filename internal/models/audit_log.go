package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one recorded state change. Metadata holds the event payload as JSON.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index" json:"user_id"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string         `gorm:"size:30;index:idx_audit_entity" json:"entity"`
	EntityID *uint          `gorm:"index:idx_audit_entity" json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
