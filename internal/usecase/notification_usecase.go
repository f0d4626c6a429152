package usecase

import (
	"context"
	"strings"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/internal/service"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound     = apperror.NotFound("Notification not found")
	ErrNotificationEventMissing = apperror.Validation("event_id is required for event notifications")
	ErrInvalidNotificationType  = apperror.Validation("type must reference an existing notification type")
	ErrInvalidNotificationState = apperror.Validation("status must be one of: all, read, unread")
)

// notificationReferences maps a foreign key constraint fragment to the
// request field it checks. Constraints are named fk_notification_<field>.
var notificationReferences = []struct {
	constraint string
	message    string
}{
	{"receiver", "receiver_id must reference an existing user"},
	{"sender", "sender must be an existing user"},
	{"notification_type", "type must reference an existing notification type"},
	{"event", "event_id must reference an existing event"},
}

type NotificationUsecase interface {
	CreateNotification(ctx context.Context, actor Actor, req *dto.CreateNotificationRequest) (*entity.Notification, error)
	UpdateNotification(ctx context.Context, actor Actor, id int64, req *dto.UpdateNotificationRequest) (*entity.Notification, error)
	GetNotification(ctx context.Context, actor Actor, id int64) (*entity.NotificationView, error)
	ListReceived(ctx context.Context, actor Actor, receiverID int64, status string, page query.Page) (*query.Result[entity.NotificationView], error)
	MarkRead(ctx context.Context, actor Actor, id int64) (*entity.Notification, error)
	DeleteNotification(ctx context.Context, actor Actor, id int64) (*entity.Notification, error)
	DeleteReceived(ctx context.Context, actor Actor, receiverID int64) (int64, error)
}

type notificationUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	notificationRepo  repository.CrudRepository[entity.Notification]
	notificationViews repository.ViewRepository[entity.NotificationView]
	typeRepo          repository.CrudRepository[entity.NotificationType]
	auditService      service.AuditService
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.CrudRepository[entity.Notification],
	notificationViews repository.ViewRepository[entity.NotificationView],
	typeRepo repository.CrudRepository[entity.NotificationType],
	auditService service.AuditService,
) NotificationUsecase {
	return &notificationUsecase{
		db:                db,
		log:               log,
		notificationRepo:  notificationRepo,
		notificationViews: notificationViews,
		typeRepo:          typeRepo,
		auditService:      auditService,
	}
}

func (u *notificationUsecase) CreateNotification(ctx context.Context, actor Actor, req *dto.CreateNotificationRequest) (*entity.Notification, error) {
	db := u.db.WithContext(ctx)

	notificationType, err := u.typeRepo.FindByID(db, req.Type)
	if err != nil {
		u.log.Warnf("Failed to find notification type: %+v", err)
		return nil, apperror.Database(err)
	}
	if notificationType == nil {
		return nil, ErrInvalidNotificationType
	}
	if strings.EqualFold(notificationType.Name, entity.NotificationTypeEvent) && req.EventID == nil {
		return nil, ErrNotificationEventMissing
	}

	notification := &entity.Notification{
		SenderID:   actor.ID,
		ReceiverID: req.ReceiverID,
		Type:       req.Type,
		Title:      req.Title,
		Content:    req.Content,
		EventID:    req.EventID,
	}
	if err := u.notificationRepo.Create(db, notification); err != nil {
		if apperror.IsForeignKeyViolation(err, "") {
			return nil, referenceError(err)
		}
		u.log.Warnf("Failed to create notification: %+v", err)
		return nil, apperror.Database(err)
	}
	return notification, nil
}

// UpdateNotification lets the sender edit the text and the receiver toggle
// the read flag. Admins may do both.
func (u *notificationUsecase) UpdateNotification(ctx context.Context, actor Actor, id int64, req *dto.UpdateNotificationRequest) (*entity.Notification, error) {
	set := query.NewUpdate().
		SetPtr("title", req.Title).
		SetPtr("content", req.Content).
		SetPtr("is_read", req.IsRead)

	var scope *query.Builder
	if !actor.IsAdmin() {
		scope = query.NewFilter(query.Or).
			Where("sender_id", query.Eq, actor.ID, true).
			Where("receiver_id", query.Eq, actor.ID, true)
	}

	notification, err := u.notificationRepo.Update(u.db.WithContext(ctx), id, set, scope)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update notification: %+v", err)
		return nil, apperror.Database(err)
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

func (u *notificationUsecase) GetNotification(ctx context.Context, actor Actor, id int64) (*entity.NotificationView, error) {
	notification, err := u.notificationViews.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find notification: %+v", err)
		return nil, apperror.Database(err)
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	if !actor.CanActFor(notification.ReceiverID) && notification.SenderID != actor.ID {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

func (u *notificationUsecase) ListReceived(ctx context.Context, actor Actor, receiverID int64, status string, page query.Page) (*query.Result[entity.NotificationView], error) {
	if !actor.CanActFor(receiverID) {
		return nil, ErrForbidden
	}

	where := query.NewFilter(query.And).Where("n.receiver_id", query.Eq, receiverID, true)
	switch strings.ToLower(status) {
	case "", entity.NotificationStatusAll:
	case entity.NotificationStatusRead:
		where.Where("n.is_read", query.Eq, true, true)
	case entity.NotificationStatusUnread:
		where.Where("n.is_read", query.Eq, false, true)
	default:
		return nil, ErrInvalidNotificationState
	}

	notifications, err := u.notificationViews.List(u.db.WithContext(ctx), where, page, "")
	if err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, err
	}
	return notifications, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, actor Actor, id int64) (*entity.Notification, error) {
	var scope *query.Builder
	if !actor.IsAdmin() {
		scope = query.NewFilter(query.And).Where("receiver_id", query.Eq, actor.ID, true)
	}

	notification, err := u.notificationRepo.Update(u.db.WithContext(ctx), id, query.NewUpdate().Set("is_read", true, true), scope)
	if err != nil {
		u.log.Warnf("Failed to mark notification read: %+v", err)
		return nil, apperror.Database(err)
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

func (u *notificationUsecase) DeleteNotification(ctx context.Context, actor Actor, id int64) (*entity.Notification, error) {
	filter := query.NewFilter(query.And).Where("id", query.Eq, id, true)
	if !actor.IsAdmin() {
		filter.Where("receiver_id", query.Eq, actor.ID, true)
	}

	deleted, err := u.notificationRepo.Delete(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to delete notification: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrNotificationNotFound
	}
	return &deleted[0], nil
}

// DeleteReceived clears a receiver's inbox and records the count.
func (u *notificationUsecase) DeleteReceived(ctx context.Context, actor Actor, receiverID int64) (int64, error) {
	if !actor.CanActFor(receiverID) {
		return 0, ErrForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, err := u.notificationRepo.Delete(tx, query.NewFilter(query.And).Where("receiver_id", query.Eq, receiverID, true))
	if err != nil {
		u.log.Warnf("Failed to delete notifications: %+v", err)
		return 0, apperror.Database(err)
	}

	count := int64(len(deleted))
	if err := u.auditService.LogDelete(ctx, tx, actor.ID, entity.AuditActionNotificationDeleteAll, "notification", nil, count); err != nil {
		return 0, apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, apperror.Database(err)
	}

	return count, nil
}

func referenceError(err error) error {
	for _, ref := range notificationReferences {
		if apperror.IsForeignKeyViolation(err, ref.constraint) {
			return apperror.Validation(ref.message)
		}
	}
	return apperror.Validation("notification references a missing record")
}
