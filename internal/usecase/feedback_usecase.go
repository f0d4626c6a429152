package usecase

import (
	"context"

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
	ErrFeedbackNotFound = apperror.NotFound("Feedback not found")
)

type FeedbackUsecase interface {
	CreateFeedback(ctx context.Context, actor Actor, req *dto.CreateFeedbackRequest) (*entity.Feedback, error)
	UpdateFeedback(ctx context.Context, actor Actor, id int64, req *dto.UpdateFeedbackRequest) (*entity.Feedback, error)
	GetFeedback(ctx context.Context, id int64) (*entity.FeedbackView, error)
	ListFeedback(ctx context.Context, search string, page query.Page) (*query.Result[entity.FeedbackView], error)
	DeleteFeedback(ctx context.Context, actor Actor, id int64) (*entity.Feedback, error)
	DeleteAllFeedback(ctx context.Context, actor Actor) (int64, error)
}

type feedbackUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	feedbackRepo  repository.CrudRepository[entity.Feedback]
	feedbackViews repository.ViewRepository[entity.FeedbackView]
	auditService  service.AuditService
}

func NewFeedbackUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	feedbackRepo repository.CrudRepository[entity.Feedback],
	feedbackViews repository.ViewRepository[entity.FeedbackView],
	auditService service.AuditService,
) FeedbackUsecase {
	return &feedbackUsecase{
		db:            db,
		log:           log,
		feedbackRepo:  feedbackRepo,
		feedbackViews: feedbackViews,
		auditService:  auditService,
	}
}

func (u *feedbackUsecase) CreateFeedback(ctx context.Context, actor Actor, req *dto.CreateFeedbackRequest) (*entity.Feedback, error) {
	feedback := &entity.Feedback{
		UserID:  actor.ID,
		Comment: req.Comment,
	}

	if err := u.feedbackRepo.Create(u.db.WithContext(ctx), feedback); err != nil {
		u.log.Warnf("Failed to create feedback: %+v", err)
		return nil, apperror.Database(err)
	}
	return feedback, nil
}

func (u *feedbackUsecase) UpdateFeedback(ctx context.Context, actor Actor, id int64, req *dto.UpdateFeedbackRequest) (*entity.Feedback, error) {
	set := query.NewUpdate().SetPtr("comment", req.Comment)

	var scope *query.Builder
	if !actor.IsAdmin() {
		scope = query.NewFilter(query.And).Where("user_id", query.Eq, actor.ID, true)
	}

	feedback, err := u.feedbackRepo.Update(u.db.WithContext(ctx), id, set, scope)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update feedback: %+v", err)
		return nil, apperror.Database(err)
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	return feedback, nil
}

func (u *feedbackUsecase) GetFeedback(ctx context.Context, id int64) (*entity.FeedbackView, error) {
	feedback, err := u.feedbackViews.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find feedback: %+v", err)
		return nil, apperror.Database(err)
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	return feedback, nil
}

// ListFeedback matches feedback whose comment contains any word of search.
func (u *feedbackUsecase) ListFeedback(ctx context.Context, search string, page query.Page) (*query.Result[entity.FeedbackView], error) {
	where := query.NewFilter(query.And).WhereAny("f.comment", query.ILike, searchTerms(search))

	feedback, err := u.feedbackViews.List(u.db.WithContext(ctx), where, page, "")
	if err != nil {
		u.log.Warnf("Failed to list feedback: %+v", err)
		return nil, err
	}
	return feedback, nil
}

func (u *feedbackUsecase) DeleteFeedback(ctx context.Context, actor Actor, id int64) (*entity.Feedback, error) {
	filter := query.NewFilter(query.And).Where("id", query.Eq, id, true)
	if !actor.IsAdmin() {
		filter.Where("user_id", query.Eq, actor.ID, true)
	}

	deleted, err := u.feedbackRepo.Delete(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to delete feedback: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrFeedbackNotFound
	}
	return &deleted[0], nil
}

func (u *feedbackUsecase) DeleteAllFeedback(ctx context.Context, actor Actor) (int64, error) {
	return deleteAll(ctx, u.db, u.log, u.feedbackRepo, u.auditService, actor, entity.AuditActionFeedbackDeleteAll, "feedback")
}
