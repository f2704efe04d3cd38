package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"
)

// FlowRun is one audited flow invocation. User text is never stored.
type FlowRun struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Flow       string    `gorm:"type:varchar(64);index" json:"flow"`
	Provider   string    `gorm:"type:varchar(32)" json:"provider"`
	Model      string    `gorm:"type:varchar(128)" json:"model"`
	Status     string    `gorm:"type:varchar(16)" json:"status"` // success or error
	DurationMs int64     `json:"duration_ms"`
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	AtsScore   *int      `json:"ats_score,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (r *FlowRun) TableName() string {
	return "flow_runs"
}
