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
	ErrQuestionTypeNotFound     = apperror.NotFound("Question type not found")
	ErrQuestionResponseNotFound = apperror.NotFound("Question type response not found")
)

type QuestionUsecase interface {
	CreateQuestionType(ctx context.Context, req *dto.CreateQuestionTypeRequest) (*entity.QuestionType, error)
	UpdateQuestionType(ctx context.Context, id int64, req *dto.UpdateQuestionTypeRequest) (*entity.QuestionType, error)
	GetQuestionType(ctx context.Context, id int64) (*entity.QuestionType, error)
	ListQuestionTypes(ctx context.Context, questionType string, page query.Page, sort string) (*query.Result[entity.QuestionType], error)
	DeleteQuestionType(ctx context.Context, id int64) (*entity.QuestionType, error)
	DeleteAllQuestionTypes(ctx context.Context, actor Actor) (int64, error)

	CreateResponse(ctx context.Context, actor Actor, req *dto.CreateQuestionResponseRequest) (*entity.QuestionTypeResponse, error)
	UpdateResponse(ctx context.Context, actor Actor, id int64, req *dto.UpdateQuestionResponseRequest) (*entity.QuestionTypeResponse, error)
	GetResponse(ctx context.Context, id int64) (*entity.QuestionTypeResponse, error)
	ListResponses(ctx context.Context, filter dto.QuestionResponseFilter, page query.Page) (*query.Result[entity.QuestionTypeResponse], error)
	DeleteResponse(ctx context.Context, actor Actor, id int64) (*entity.QuestionTypeResponse, error)
	DeleteUserResponses(ctx context.Context, actor Actor, userID int64, responseType string) ([]entity.QuestionTypeResponse, error)
}

type questionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	typeRepo     repository.CrudRepository[entity.QuestionType]
	responseRepo repository.CrudRepository[entity.QuestionTypeResponse]
	auditService service.AuditService
}

func NewQuestionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	typeRepo repository.CrudRepository[entity.QuestionType],
	responseRepo repository.CrudRepository[entity.QuestionTypeResponse],
	auditService service.AuditService,
) QuestionUsecase {
	return &questionUsecase{
		db:           db,
		log:          log,
		typeRepo:     typeRepo,
		responseRepo: responseRepo,
		auditService: auditService,
	}
}

func (u *questionUsecase) CreateQuestionType(ctx context.Context, req *dto.CreateQuestionTypeRequest) (*entity.QuestionType, error) {
	questionType := &entity.QuestionType{
		Text: req.Text,
		Type: req.Type,
	}
	if err := u.typeRepo.Create(u.db.WithContext(ctx), questionType); err != nil {
		u.log.Warnf("Failed to create question type: %+v", err)
		return nil, apperror.Database(err)
	}
	return questionType, nil
}

func (u *questionUsecase) UpdateQuestionType(ctx context.Context, id int64, req *dto.UpdateQuestionTypeRequest) (*entity.QuestionType, error) {
	set := query.NewUpdate().
		SetPtr("text", req.Text).
		SetPtr("type", req.Type)

	questionType, err := u.typeRepo.Update(u.db.WithContext(ctx), id, set, nil)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update question type: %+v", err)
		return nil, apperror.Database(err)
	}
	if questionType == nil {
		return nil, ErrQuestionTypeNotFound
	}
	return questionType, nil
}

func (u *questionUsecase) GetQuestionType(ctx context.Context, id int64) (*entity.QuestionType, error) {
	questionType, err := u.typeRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find question type: %+v", err)
		return nil, apperror.Database(err)
	}
	if questionType == nil {
		return nil, ErrQuestionTypeNotFound
	}
	return questionType, nil
}

func (u *questionUsecase) ListQuestionTypes(ctx context.Context, questionType string, page query.Page, sort string) (*query.Result[entity.QuestionType], error) {
	where := query.NewFilter(query.And).Where("q.type", query.Eq, questionType, questionType != "")

	types, err := u.typeRepo.List(u.db.WithContext(ctx), where, page, sort)
	if err != nil {
		u.log.Warnf("Failed to list question types: %+v", err)
		return nil, err
	}
	return types, nil
}

// DeleteQuestionType also removes every response to it through the
// foreign key cascade.
func (u *questionUsecase) DeleteQuestionType(ctx context.Context, id int64) (*entity.QuestionType, error) {
	deleted, err := u.typeRepo.Delete(u.db.WithContext(ctx), query.NewFilter(query.And).Where("id", query.Eq, id, true))
	if err != nil {
		u.log.Warnf("Failed to delete question type: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrQuestionTypeNotFound
	}
	return &deleted[0], nil
}

func (u *questionUsecase) DeleteAllQuestionTypes(ctx context.Context, actor Actor) (int64, error) {
	return deleteAll(ctx, u.db, u.log, u.typeRepo, u.auditService, actor, entity.AuditActionQuestionDeleteAll, "question_type")
}

func (u *questionUsecase) CreateResponse(ctx context.Context, actor Actor, req *dto.CreateQuestionResponseRequest) (*entity.QuestionTypeResponse, error) {
	db := u.db.WithContext(ctx)

	questionType, err := u.typeRepo.FindByID(db, req.QuestionTypesID)
	if err != nil {
		u.log.Warnf("Failed to find question type: %+v", err)
		return nil, apperror.Database(err)
	}
	if questionType == nil {
		return nil, ErrQuestionTypeNotFound
	}

	response := &entity.QuestionTypeResponse{
		QuestionTypesID: req.QuestionTypesID,
		UserID:          actor.ID,
		Text:            req.Text,
		Type:            req.Type,
	}
	if err := u.responseRepo.Create(db, response); err != nil {
		if apperror.IsForeignKeyViolation(err, "") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create question type response: %+v", err)
		return nil, apperror.Database(err)
	}
	return response, nil
}

func (u *questionUsecase) UpdateResponse(ctx context.Context, actor Actor, id int64, req *dto.UpdateQuestionResponseRequest) (*entity.QuestionTypeResponse, error) {
	set := query.NewUpdate().
		SetPtr("text", req.Text).
		SetPtr("type", req.Type)

	var scope *query.Builder
	if !actor.IsAdmin() {
		scope = query.NewFilter(query.And).Where("user_id", query.Eq, actor.ID, true)
	}

	response, err := u.responseRepo.Update(u.db.WithContext(ctx), id, set, scope)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update question type response: %+v", err)
		return nil, apperror.Database(err)
	}
	if response == nil {
		return nil, ErrQuestionResponseNotFound
	}
	return response, nil
}

func (u *questionUsecase) GetResponse(ctx context.Context, id int64) (*entity.QuestionTypeResponse, error) {
	response, err := u.responseRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find question type response: %+v", err)
		return nil, apperror.Database(err)
	}
	if response == nil {
		return nil, ErrQuestionResponseNotFound
	}
	return response, nil
}

func (u *questionUsecase) ListResponses(ctx context.Context, filter dto.QuestionResponseFilter, page query.Page) (*query.Result[entity.QuestionTypeResponse], error) {
	where := query.NewFilter(query.And).
		WherePtr("qr.user_id", query.Eq, filter.UserID).
		WherePtr("qr.question_types_id", query.Eq, filter.QuestionTypesID).
		Where("qr.type", query.Eq, filter.Type, filter.Type != "")

	responses, err := u.responseRepo.List(u.db.WithContext(ctx), where, page, "")
	if err != nil {
		u.log.Warnf("Failed to list question type responses: %+v", err)
		return nil, err
	}
	return responses, nil
}

func (u *questionUsecase) DeleteResponse(ctx context.Context, actor Actor, id int64) (*entity.QuestionTypeResponse, error) {
	filter := query.NewFilter(query.And).Where("id", query.Eq, id, true)
	if !actor.IsAdmin() {
		filter.Where("user_id", query.Eq, actor.ID, true)
	}

	deleted, err := u.responseRepo.Delete(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to delete question type response: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrQuestionResponseNotFound
	}
	return &deleted[0], nil
}

// DeleteUserResponses clears a user's answers, optionally only those of one
// response type, so onboarding can be retaken.
func (u *questionUsecase) DeleteUserResponses(ctx context.Context, actor Actor, userID int64, responseType string) ([]entity.QuestionTypeResponse, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}

	filter := query.NewFilter(query.And).
		Where("user_id", query.Eq, userID, true).
		Where("type", query.Eq, responseType, responseType != "")

	deleted, err := u.responseRepo.Delete(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to delete question type responses: %+v", err)
		return nil, apperror.Database(err)
	}
	return deleted, nil
}
