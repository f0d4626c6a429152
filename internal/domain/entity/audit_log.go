package entity

import "time"

// AuditLog is an audit trail entry for destructive or privileged actions.
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64    `gorm:"index" json:"user_id,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

const (
	AuditActionUserRegister          = "user.register"
	AuditActionUserDelete            = "user.delete"
	AuditActionPasswordChange        = "user.password_change"
	AuditActionEventDelete           = "event.delete"
	AuditActionEventDeleteAll        = "event.delete_all"
	AuditActionReportDelete          = "report.delete"
	AuditActionReportDeleteAll       = "report.delete_all"
	AuditActionBlockDeleteAll        = "block.delete_all"
	AuditActionFeedbackDeleteAll     = "feedback.delete_all"
	AuditActionFAQDeleteAll          = "faq.delete_all"
	AuditActionQuestionDeleteAll     = "question_type.delete_all"
	AuditActionNotificationDeleteAll = "notification.delete_all"
)
