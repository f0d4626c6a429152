package entity

import "time"

const (
	TaskTypeTask  = "task"
	TaskTypeItems = "items"

	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// AttendeeTask is a task or a list of items an attendee commits to bring.
type AttendeeTask struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID        int64      `gorm:"not null;index" json:"event_id"`
	UserID         int64      `gorm:"not null;index" json:"user_id"`
	Type           string     `gorm:"type:varchar(10);not null" json:"type"`
	Text           *string    `gorm:"type:text" json:"text"`
	Items          StringList `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	StartTimestamp time.Time  `gorm:"not null" json:"start_timestamp"`
	EndTimestamp   time.Time  `gorm:"not null" json:"end_timestamp"`
	Status         string     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AttendeeTask) TableName() string {
	return "attendee_tasks"
}
