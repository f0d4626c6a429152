package usecase

import (
	"context"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/internal/infrastructure/metrics"
	"eventplanner/internal/service"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = apperror.NotFound("Event not found")
	ErrCoverPhotoNotFound = apperror.Validation("Cover photo not found")
	ErrInvalidEventTime   = apperror.Validation("end_timestamp must be after start_timestamp")
	ErrAlreadyJoined      = apperror.Conflict("You have already joined this event")
	ErrNotJoined          = apperror.NotFound("You have not joined this event")
)

type EventUsecase interface {
	CreateEvent(ctx context.Context, actor Actor, req *dto.CreateEventRequest) (*entity.Event, error)
	UpdateEvent(ctx context.Context, actor Actor, id int64, req *dto.UpdateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, actor Actor, id int64) (*entity.EventDetail, error)
	ListEvents(ctx context.Context, actor Actor, filter dto.EventFilter, page query.Page, sort string) (*query.Result[entity.Event], error)
	ListEventsWithDetails(ctx context.Context, actor Actor, filter dto.EventFilter, page query.Page, sort string) (*query.Result[entity.EventDetail], error)
	DeleteEvent(ctx context.Context, actor Actor, id int64) (*entity.Event, error)
	DeleteUserEvents(ctx context.Context, actor Actor, userID int64) ([]entity.Event, error)
	JoinEvent(ctx context.Context, actor Actor, eventID int64) (*entity.EventAttendee, error)
	LeaveEvent(ctx context.Context, actor Actor, eventID int64) error
	ListAttendees(ctx context.Context, actor Actor, eventID int64, page query.Page) (*query.Result[entity.AttendeeView], error)
}

type eventUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	eventRepo     repository.EventRepository
	attendeeRepo  repository.CrudRepository[entity.EventAttendee]
	attendeeViews repository.ViewRepository[entity.AttendeeView]
	uploadRepo    repository.CrudRepository[entity.Upload]
	auditService  service.AuditService
}

func NewEventUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	eventRepo repository.EventRepository,
	attendeeRepo repository.CrudRepository[entity.EventAttendee],
	attendeeViews repository.ViewRepository[entity.AttendeeView],
	uploadRepo repository.CrudRepository[entity.Upload],
	auditService service.AuditService,
) EventUsecase {
	return &eventUsecase{
		db:            db,
		log:           log,
		eventRepo:     eventRepo,
		attendeeRepo:  attendeeRepo,
		attendeeViews: attendeeViews,
		uploadRepo:    uploadRepo,
		auditService:  auditService,
	}
}

func (u *eventUsecase) CreateEvent(ctx context.Context, actor Actor, req *dto.CreateEventRequest) (*entity.Event, error) {
	if !req.EndTimestamp.After(req.StartTimestamp) {
		return nil, ErrInvalidEventTime
	}

	db := u.db.WithContext(ctx)
	if err := u.checkCover(db, req.CoverPhotoID); err != nil {
		return nil, err
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = entity.PrivacyPublic
	}

	event := &entity.Event{
		UserID:         actor.ID,
		Title:          req.Title,
		Category:       req.Category,
		CoverPhotoID:   req.CoverPhotoID,
		StartTimestamp: req.StartTimestamp,
		EndTimestamp:   req.EndTimestamp,
		EventType:      req.EventType,
		VirtualLink:    req.VirtualLink,
		Location:       req.Location,
		EventDetails:   req.EventDetails,
		NoGuests:       req.NoGuests,
		Privacy:        privacy,
		SuggestedItems: entity.StringList(req.SuggestedItems),
	}

	if err := u.eventRepo.Create(db, event); err != nil {
		if apperror.IsForeignKeyViolation(err, "") {
			return nil, apperror.Validation("Referenced user or cover photo does not exist")
		}
		u.log.Warnf("Failed to create event: %+v", err)
		return nil, apperror.Database(err)
	}

	return event, nil
}

func (u *eventUsecase) UpdateEvent(ctx context.Context, actor Actor, id int64, req *dto.UpdateEventRequest) (*entity.Event, error) {
	db := u.db.WithContext(ctx)

	current, err := u.findOwned(db, actor, id)
	if err != nil {
		return nil, err
	}

	start, end := current.StartTimestamp, current.EndTimestamp
	if req.StartTimestamp != nil {
		start = *req.StartTimestamp
	}
	if req.EndTimestamp != nil {
		end = *req.EndTimestamp
	}
	if !end.After(start) {
		return nil, ErrInvalidEventTime
	}

	if err := u.checkCover(db, req.CoverPhotoID); err != nil {
		return nil, err
	}

	set := query.NewUpdate().
		SetPtr("title", req.Title).
		SetPtr("category", req.Category).
		SetPtr("cover_photo_id", req.CoverPhotoID).
		SetPtr("start_timestamp", req.StartTimestamp).
		SetPtr("end_timestamp", req.EndTimestamp).
		SetPtr("event_type", req.EventType).
		SetPtr("virtual_link", req.VirtualLink).
		SetPtr("location", req.Location).
		SetPtr("event_details", req.EventDetails).
		SetPtr("no_guests", req.NoGuests).
		SetPtr("privacy", req.Privacy).
		Set("suggested_items", stringList(req.SuggestedItems), req.SuggestedItems != nil)

	event, err := u.eventRepo.Update(db, id, set, nil)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update event: %+v", err)
		return nil, apperror.Database(err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	return event, nil
}

func (u *eventUsecase) GetEvent(ctx context.Context, actor Actor, id int64) (*entity.EventDetail, error) {
	event, err := u.eventRepo.ListDetailed(u.db.WithContext(ctx),
		query.NewFilter(query.And).Where("e.id", query.Eq, id, true), query.Unpaged(), "")
	if err != nil {
		u.log.Warnf("Failed to find event: %+v", err)
		return nil, err
	}
	if len(event.Items) == 0 {
		return nil, ErrEventNotFound
	}

	detail := &event.Items[0]
	if detail.Privacy == entity.PrivacyPrivate && !actor.CanActFor(detail.UserID) {
		return nil, ErrEventNotFound
	}
	return detail, nil
}

func (u *eventUsecase) ListEvents(ctx context.Context, actor Actor, filter dto.EventFilter, page query.Page, sort string) (*query.Result[entity.Event], error) {
	events, err := u.eventRepo.List(u.db.WithContext(ctx), eventFilter(actor, filter), page, sort)
	if err != nil {
		u.log.Warnf("Failed to list events: %+v", err)
		return nil, err
	}
	return events, nil
}

func (u *eventUsecase) ListEventsWithDetails(ctx context.Context, actor Actor, filter dto.EventFilter, page query.Page, sort string) (*query.Result[entity.EventDetail], error) {
	events, err := u.eventRepo.ListDetailed(u.db.WithContext(ctx), eventFilter(actor, filter), page, sort)
	if err != nil {
		u.log.Warnf("Failed to list events: %+v", err)
		return nil, err
	}
	return events, nil
}

func (u *eventUsecase) DeleteEvent(ctx context.Context, actor Actor, id int64) (*entity.Event, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.findOwned(tx, actor, id); err != nil {
		return nil, err
	}

	deleted, err := u.eventRepo.Delete(tx, query.NewFilter(query.And).Where("id", query.Eq, id, true))
	if err != nil {
		u.log.Warnf("Failed to delete event: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrEventNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actor.ID, entity.AuditActionEventDelete, "event", deleted[0], 1); err != nil {
		return nil, apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Database(err)
	}

	return &deleted[0], nil
}

func (u *eventUsecase) DeleteUserEvents(ctx context.Context, actor Actor, userID int64) ([]entity.Event, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, err := u.eventRepo.Delete(tx, query.NewFilter(query.And).Where("user_id", query.Eq, userID, true))
	if err != nil {
		u.log.Warnf("Failed to delete events: %+v", err)
		return nil, apperror.Database(err)
	}

	if len(deleted) > 0 {
		meta := entity.JSON{"resource": "event", "user_id": userID, "count": len(deleted)}
		if err := u.auditService.Log(ctx, tx, &actor.ID, entity.AuditActionEventDeleteAll, meta); err != nil {
			return nil, apperror.Database(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Database(err)
	}

	return deleted, nil
}

// JoinEvent adds the caller as an attendee and bumps the attendee count in
// one transaction. Joining twice is a conflict.
func (u *eventUsecase) JoinEvent(ctx context.Context, actor Actor, eventID int64) (*entity.EventAttendee, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	event, err := u.eventRepo.FindByID(tx, eventID)
	if err != nil {
		u.log.Warnf("Failed to find event: %+v", err)
		return nil, apperror.Database(err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if event.Privacy == entity.PrivacyPrivate && !actor.CanActFor(event.UserID) {
		return nil, ErrEventNotFound
	}

	attendee := &entity.EventAttendee{EventID: eventID, UserID: actor.ID}
	if err := u.attendeeRepo.Create(tx, attendee); err != nil {
		if apperror.IsUniqueViolation(err, "event_user") {
			return nil, ErrAlreadyJoined
		}
		u.log.Warnf("Failed to create attendee: %+v", err)
		return nil, apperror.Database(err)
	}

	if err := u.eventRepo.AdjustAttendeeCount(tx, eventID, 1); err != nil {
		u.log.Warnf("Failed to increment attendee count: %+v", err)
		return nil, apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Database(err)
	}

	metrics.RecordEventJoin()
	return attendee, nil
}

func (u *eventUsecase) LeaveEvent(ctx context.Context, actor Actor, eventID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	removed, err := u.attendeeRepo.Delete(tx, query.NewFilter(query.And).
		Where("event_id", query.Eq, eventID, true).
		Where("user_id", query.Eq, actor.ID, true))
	if err != nil {
		u.log.Warnf("Failed to delete attendee: %+v", err)
		return apperror.Database(err)
	}
	if len(removed) == 0 {
		return ErrNotJoined
	}

	if err := u.eventRepo.AdjustAttendeeCount(tx, eventID, -len(removed)); err != nil {
		u.log.Warnf("Failed to decrement attendee count: %+v", err)
		return apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return apperror.Database(err)
	}

	metrics.RecordEventLeave()
	return nil
}

func (u *eventUsecase) ListAttendees(ctx context.Context, actor Actor, eventID int64, page query.Page) (*query.Result[entity.AttendeeView], error) {
	db := u.db.WithContext(ctx)

	event, err := u.eventRepo.FindByID(db, eventID)
	if err != nil {
		u.log.Warnf("Failed to find event: %+v", err)
		return nil, apperror.Database(err)
	}
	if event == nil || (event.Privacy == entity.PrivacyPrivate && !actor.CanActFor(event.UserID)) {
		return nil, ErrEventNotFound
	}

	attendees, err := u.attendeeViews.List(db, query.NewFilter(query.And).Where("a.event_id", query.Eq, eventID, true), page, "")
	if err != nil {
		u.log.Warnf("Failed to list attendees: %+v", err)
		return nil, err
	}
	return attendees, nil
}

// findOwned reports events of other users as missing, matching how private
// events are hidden from non-owners.
func (u *eventUsecase) findOwned(db *gorm.DB, actor Actor, id int64) (*entity.Event, error) {
	event, err := u.eventRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find event: %+v", err)
		return nil, apperror.Database(err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if !actor.CanActFor(event.UserID) {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (u *eventUsecase) checkCover(db *gorm.DB, coverID *int64) error {
	if coverID == nil {
		return nil
	}
	exists, err := u.uploadRepo.Exists(db, query.NewFilter(query.And).Where("id", query.Eq, *coverID, true))
	if err != nil {
		u.log.Warnf("Failed to check cover photo: %+v", err)
		return apperror.Database(err)
	}
	if !exists {
		return ErrCoverPhotoNotFound
	}
	return nil
}

// eventFilter builds the list filter. Private events of other users are
// hidden from non-admins.
func eventFilter(actor Actor, filter dto.EventFilter) *query.Builder {
	b := query.NewFilter(query.And).
		WherePtr("e.user_id", query.Eq, filter.UserID).
		Where("e.category", query.Eq, filter.Category, filter.Category != "").
		Where("e.title", query.ILike, contains(filter.Title), filter.Title != "").
		Where("e.event_type", query.Eq, filter.EventType, filter.EventType != "").
		Where("e.privacy", query.Eq, filter.Privacy, filter.Privacy != "").
		WherePtr("e.start_timestamp", query.Gte, filter.From).
		WherePtr("e.start_timestamp", query.Lte, filter.To)

	ownList := filter.UserID != nil && *filter.UserID == actor.ID
	if !actor.IsAdmin() && !ownList {
		b.Where("e.privacy", query.Eq, entity.PrivacyPublic, true)
	}
	return b
}
