package entity

import "time"

const (
	NotificationStatusAll    = "all"
	NotificationStatusRead   = "read"
	NotificationStatusUnread = "unread"
)

type Notification struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int64     `gorm:"not null;index" json:"sender_id"`
	ReceiverID int64     `gorm:"not null;index" json:"receiver_id"`
	Type       int64     `gorm:"not null" json:"type"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	EventID    *int64    `gorm:"index" json:"event_id"`
	IsRead     bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Sender           User             `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver         User             `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	NotificationType NotificationType `gorm:"foreignKey:Type" json:"-"`
	Event            *Event           `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Notification) TableName() string {
	return "notification"
}

// NotificationView is a notification with type name and both parties embedded.
type NotificationView struct {
	Notification
	TypeName     string `json:"notification_type_name"`
	SenderInfo   JSON   `json:"sender"`
	ReceiverInfo JSON   `json:"receiver"`
}
