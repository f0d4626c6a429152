package usecase

import (
	"context"
	"strings"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = apperror.NotFound("Attendee task not found")
	ErrTaskTextRequired  = apperror.Validation("text is required for task type task")
	ErrTaskItemsRequired = apperror.Validation("items must not be empty for task type items")
	ErrInvalidTaskTime   = apperror.Validation("end_timestamp must be after start_timestamp")
)

type AttendeeTaskUsecase interface {
	CreateTask(ctx context.Context, actor Actor, req *dto.CreateAttendeeTaskRequest) (*entity.AttendeeTask, error)
	UpdateTask(ctx context.Context, actor Actor, id int64, req *dto.UpdateAttendeeTaskRequest) (*entity.AttendeeTask, error)
	UpdateTaskStatus(ctx context.Context, actor Actor, id int64, status string) (*entity.AttendeeTask, error)
	GetTask(ctx context.Context, id int64) (*entity.AttendeeTask, error)
	ListTasks(ctx context.Context, filter dto.AttendeeTaskFilter, page query.Page, sort string) (*query.Result[entity.AttendeeTask], error)
	DeleteTask(ctx context.Context, actor Actor, id int64) (*entity.AttendeeTask, error)
}

type attendeeTaskUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	taskRepo  repository.CrudRepository[entity.AttendeeTask]
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
}

func NewAttendeeTaskUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	taskRepo repository.CrudRepository[entity.AttendeeTask],
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
) AttendeeTaskUsecase {
	return &attendeeTaskUsecase{
		db:        db,
		log:       log,
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

func (u *attendeeTaskUsecase) CreateTask(ctx context.Context, actor Actor, req *dto.CreateAttendeeTaskRequest) (*entity.AttendeeTask, error) {
	task := &entity.AttendeeTask{
		EventID:        req.EventID,
		UserID:         req.UserID,
		Type:           req.Type,
		StartTimestamp: req.StartTimestamp,
		EndTimestamp:   req.EndTimestamp,
		Status:         entity.TaskStatusPending,
		Items:          entity.StringList{},
	}
	if task.UserID == 0 {
		task.UserID = actor.ID
	}

	switch req.Type {
	case entity.TaskTypeTask:
		text := strings.TrimSpace(req.Text)
		if text == "" {
			return nil, ErrTaskTextRequired
		}
		task.Text = &text
	case entity.TaskTypeItems:
		if len(req.Items) == 0 {
			return nil, ErrTaskItemsRequired
		}
		task.Items = entity.StringList(req.Items)
	}
	if !task.EndTimestamp.After(task.StartTimestamp) {
		return nil, ErrInvalidTaskTime
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	event, err := u.eventRepo.FindByID(tx, task.EventID)
	if err != nil {
		u.log.Warnf("Failed to find event: %+v", err)
		return nil, apperror.Database(err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	// Only the event owner assigns tasks to other users.
	if task.UserID != actor.ID && !actor.CanActFor(event.UserID) {
		return nil, ErrForbidden
	}

	user, err := u.userRepo.FindActiveByID(tx, task.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.taskRepo.Create(tx, task); err != nil {
		u.log.Warnf("Failed to create attendee task: %+v", err)
		return nil, apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Database(err)
	}

	return task, nil
}

func (u *attendeeTaskUsecase) UpdateTask(ctx context.Context, actor Actor, id int64, req *dto.UpdateAttendeeTaskRequest) (*entity.AttendeeTask, error) {
	db := u.db.WithContext(ctx)

	current, err := u.findEditable(db, actor, id)
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
		return nil, ErrInvalidTaskTime
	}
	if current.Type == entity.TaskTypeItems && req.Items != nil && len(*req.Items) == 0 {
		return nil, ErrTaskItemsRequired
	}

	set := query.NewUpdate().
		SetPtr("text", req.Text).
		Set("items", stringList(req.Items), req.Items != nil).
		SetPtr("start_timestamp", req.StartTimestamp).
		SetPtr("end_timestamp", req.EndTimestamp).
		SetPtr("status", req.Status)

	return u.update(db, id, set)
}

func (u *attendeeTaskUsecase) UpdateTaskStatus(ctx context.Context, actor Actor, id int64, status string) (*entity.AttendeeTask, error) {
	db := u.db.WithContext(ctx)

	if _, err := u.findEditable(db, actor, id); err != nil {
		return nil, err
	}

	return u.update(db, id, query.NewUpdate().Set("status", status, true))
}

func (u *attendeeTaskUsecase) GetTask(ctx context.Context, id int64) (*entity.AttendeeTask, error) {
	task, err := u.taskRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find attendee task: %+v", err)
		return nil, apperror.Database(err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (u *attendeeTaskUsecase) ListTasks(ctx context.Context, filter dto.AttendeeTaskFilter, page query.Page, sort string) (*query.Result[entity.AttendeeTask], error) {
	where := query.NewFilter(query.And).
		WherePtr("t.event_id", query.Eq, filter.EventID).
		WherePtr("t.user_id", query.Eq, filter.UserID).
		Where("t.type", query.Eq, filter.Type, filter.Type != "").
		Where("t.status", query.Eq, filter.Status, filter.Status != "")

	tasks, err := u.taskRepo.List(u.db.WithContext(ctx), where, page, sort)
	if err != nil {
		u.log.Warnf("Failed to list attendee tasks: %+v", err)
		return nil, err
	}
	return tasks, nil
}

func (u *attendeeTaskUsecase) DeleteTask(ctx context.Context, actor Actor, id int64) (*entity.AttendeeTask, error) {
	db := u.db.WithContext(ctx)

	if _, err := u.findEditable(db, actor, id); err != nil {
		return nil, err
	}

	deleted, err := u.taskRepo.Delete(db, query.NewFilter(query.And).Where("id", query.Eq, id, true))
	if err != nil {
		u.log.Warnf("Failed to delete attendee task: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrTaskNotFound
	}
	return &deleted[0], nil
}

// findEditable loads a task the actor may change: the assignee, the event
// owner or an admin.
func (u *attendeeTaskUsecase) findEditable(db *gorm.DB, actor Actor, id int64) (*entity.AttendeeTask, error) {
	task, err := u.taskRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find attendee task: %+v", err)
		return nil, apperror.Database(err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if actor.CanActFor(task.UserID) {
		return task, nil
	}

	event, err := u.eventRepo.FindByID(db, task.EventID)
	if err != nil {
		u.log.Warnf("Failed to find event: %+v", err)
		return nil, apperror.Database(err)
	}
	if event == nil || event.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return task, nil
}

func (u *attendeeTaskUsecase) update(db *gorm.DB, id int64, set *query.Builder) (*entity.AttendeeTask, error) {
	task, err := u.taskRepo.Update(db, id, set, nil)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update attendee task: %+v", err)
		return nil, apperror.Database(err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
