package dto

import (
	"time"
)

type CreateEventRequest struct {
	Title          string    `json:"title" validate:"required,max=255"`
	Category       string    `json:"category" validate:"omitempty,max=100"`
	CoverPhotoID   *int64    `json:"cover_photo_id" validate:"omitempty,gt=0"`
	StartTimestamp time.Time `json:"start_timestamp" validate:"required"`
	EndTimestamp   time.Time `json:"end_timestamp" validate:"required,gtfield=StartTimestamp"`
	EventType      string    `json:"event_type" validate:"required,oneof=in_person virtual"`
	VirtualLink    string    `json:"virtual_link" validate:"required_if=EventType virtual,omitempty,url"`
	Location       string    `json:"location" validate:"required_if=EventType in_person"`
	EventDetails   string    `json:"event_details"`
	NoGuests       int       `json:"no_guests" validate:"omitempty,min=0"`
	Privacy        string    `json:"privacy" validate:"omitempty,oneof=public private"`
	SuggestedItems []string  `json:"suggested_items" validate:"omitempty,dive,min=1,max=255"`
}

type UpdateEventRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Category       *string    `json:"category" validate:"omitempty,max=100"`
	CoverPhotoID   *int64     `json:"cover_photo_id" validate:"omitempty,gt=0"`
	StartTimestamp *time.Time `json:"start_timestamp"`
	EndTimestamp   *time.Time `json:"end_timestamp"`
	EventType      *string    `json:"event_type" validate:"omitempty,oneof=in_person virtual"`
	VirtualLink    *string    `json:"virtual_link" validate:"omitempty,url"`
	Location       *string    `json:"location"`
	EventDetails   *string    `json:"event_details"`
	NoGuests       *int       `json:"no_guests" validate:"omitempty,min=0"`
	Privacy        *string    `json:"privacy" validate:"omitempty,oneof=public private"`
	SuggestedItems *[]string  `json:"suggested_items" validate:"omitempty,dive,min=1,max=255"`
}

// EventFilter holds the optional list filters read from the query string.
type EventFilter struct {
	UserID    *int64
	Category  string
	Title     string
	EventType string
	Privacy   string
	From      *time.Time
	To        *time.Time
}
