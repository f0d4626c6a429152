package entity

import "time"

const (
	EventTypeInPerson = "in_person"
	EventTypeVirtual  = "virtual"

	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

type Event struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64      `gorm:"not null;index" json:"user_id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Category       string     `gorm:"type:varchar(100);index" json:"category"`
	CoverPhotoID   *int64     `json:"cover_photo_id"`
	StartTimestamp time.Time  `gorm:"not null;index" json:"start_timestamp"`
	EndTimestamp   time.Time  `gorm:"not null" json:"end_timestamp"`
	EventType      string     `gorm:"type:varchar(20);not null" json:"event_type"`
	VirtualLink    string     `gorm:"type:text" json:"virtual_link"`
	Location       string     `gorm:"type:text" json:"location"`
	EventDetails   string     `gorm:"type:text" json:"event_details"`
	NoGuests       int        `gorm:"not null;default:0" json:"no_guests"`
	Privacy        string     `gorm:"type:varchar(20);not null;default:public" json:"privacy"`
	SuggestedItems StringList `gorm:"type:jsonb;not null;default:'[]'" json:"suggested_items"`
	TotalAttendee  int        `gorm:"not null;default:0" json:"total_attendee"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User       User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CoverPhoto *Upload `gorm:"foreignKey:CoverPhotoID" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

// EventDetail is an event with its owner and cover upload embedded.
type EventDetail struct {
	Event
	Owner JSON `json:"owner"`
	Cover JSON `json:"cover"`
}

// EventAttendee records one user joining one event.
type EventAttendee struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   int64     `gorm:"not null;uniqueIndex:idx_event_attendees_event_user" json:"event_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_event_attendees_event_user;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EventAttendee) TableName() string {
	return "event_attendees"
}

// AttendeeView is an attendee row with the joined user.
type AttendeeView struct {
	EventAttendee
	Attendee JSON `json:"user"`
}
