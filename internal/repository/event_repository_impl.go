package repository

import (
	"eventplanner/internal/domain/entity"
	domainRepo "eventplanner/internal/domain/repository"
	"eventplanner/pkg/query"

	"gorm.io/gorm"
)

type eventRepository struct {
	*crudRepository[entity.Event]
	details *crudRepository[entity.EventDetail]
}

func NewEventRepository() domainRepo.EventRepository {
	return &eventRepository{
		crudRepository: &crudRepository[entity.Event]{res: EventResource},
		details:        &crudRepository[entity.EventDetail]{res: EventDetailResource},
	}
}

func (r *eventRepository) ListDetailed(db *gorm.DB, filter *query.Builder, page query.Page, sort string) (*query.Result[entity.EventDetail], error) {
	return r.details.List(db, filter, page, sort)
}

func (r *eventRepository) AdjustAttendeeCount(db *gorm.DB, eventID int64, delta int) error {
	return db.Exec(
		"UPDATE events SET total_attendee = GREATEST(total_attendee + $1, 0), updated_at = NOW() WHERE id = $2",
		delta, eventID,
	).Error
}
