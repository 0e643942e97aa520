package audit

import (
	"time"

	"github.com/google/uuid"
)

// Leave workflow actions.
const (
	ActionLeaveCreated   = "LEAVE_REQUEST_CREATED"
	ActionLeaveApproved  = "LEAVE_REQUEST_APPROVED"
	ActionLeaveRejected  = "LEAVE_REQUEST_REJECTED"
	ActionLeaveUpdated   = "LEAVE_REQUEST_UPDATED"
	ActionLeaveCancelled = "LEAVE_REQUEST_CANCELLED"
	ActionLeaveDeleted   = "LEAVE_REQUEST_DELETED"
)

const ResourceLeaveRequest = "leave_request"

type Entry struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action       string         `gorm:"type:varchar(60);not null"`
	ResourceType string         `gorm:"type:varchar(40);not null;index:idx_audit_logs_resource"`
	ResourceID   string         `gorm:"type:varchar(64);not null;index:idx_audit_logs_resource"`
	Details      map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time      `gorm:"not null;index"`
}

func (Entry) TableName() string {
	return "audit_logs"
}
