package repository

import (
	"eventplanner/internal/domain/entity"
	"eventplanner/pkg/query"

	"gorm.io/gorm"
)

type EventRepository interface {
	CrudRepository[entity.Event]
	ListDetailed(db *gorm.DB, filter *query.Builder, page query.Page, sort string) (*query.Result[entity.EventDetail], error)
	// AdjustAttendeeCount adds delta to total_attendee, never going below zero.
	AdjustAttendeeCount(db *gorm.DB, eventID int64, delta int) error
}
