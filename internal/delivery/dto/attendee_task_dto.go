package dto

import (
	"time"
)

type CreateAttendeeTaskRequest struct {
	EventID        int64     `json:"event_id" validate:"required,gt=0"`
	UserID         int64     `json:"user_id" validate:"omitempty,gt=0"`
	Type           string    `json:"type" validate:"required,oneof=task items"`
	Text           string    `json:"text" validate:"required_if=Type task"`
	Items          []string  `json:"items" validate:"required_if=Type items,omitempty,min=1,dive,min=1,max=255"`
	StartTimestamp time.Time `json:"start_timestamp" validate:"required"`
	EndTimestamp   time.Time `json:"end_timestamp" validate:"required,gtfield=StartTimestamp"`
}

type UpdateAttendeeTaskRequest struct {
	Text           *string    `json:"text" validate:"omitempty,min=1"`
	Items          *[]string  `json:"items" validate:"omitempty,min=1,dive,min=1,max=255"`
	StartTimestamp *time.Time `json:"start_timestamp"`
	EndTimestamp   *time.Time `json:"end_timestamp"`
	Status         *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

type AttendeeTaskFilter struct {
	EventID *int64
	UserID  *int64
	Type    string
	Status  string
}
