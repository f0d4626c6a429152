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
	ErrFAQNotFound = apperror.NotFound("FAQ not found")
	ErrFAQExists   = apperror.Conflict("FAQ with the same question and answer already exists")
)

type FAQUsecase interface {
	CreateFAQ(ctx context.Context, req *dto.CreateFAQRequest) (*entity.FAQ, error)
	UpdateFAQ(ctx context.Context, id int64, req *dto.UpdateFAQRequest) (*entity.FAQ, error)
	GetFAQ(ctx context.Context, id int64) (*entity.FAQ, error)
	ListFAQ(ctx context.Context, search string, page query.Page) (*query.Result[entity.FAQ], error)
	DeleteFAQ(ctx context.Context, id int64) (*entity.FAQ, error)
	DeleteAllFAQ(ctx context.Context, actor Actor) (int64, error)
}

type faqUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	faqRepo      repository.CrudRepository[entity.FAQ]
	auditService service.AuditService
}

func NewFAQUsecase(db *gorm.DB, log *logrus.Logger, faqRepo repository.CrudRepository[entity.FAQ], auditService service.AuditService) FAQUsecase {
	return &faqUsecase{
		db:           db,
		log:          log,
		faqRepo:      faqRepo,
		auditService: auditService,
	}
}

func (u *faqUsecase) CreateFAQ(ctx context.Context, req *dto.CreateFAQRequest) (*entity.FAQ, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.faqRepo.Exists(tx, query.NewFilter(query.And).
		Where("question", query.Eq, req.Question, true).
		Where("answer", query.Eq, req.Answer, true))
	if err != nil {
		u.log.Warnf("Failed to check faq: %+v", err)
		return nil, apperror.Database(err)
	}
	if exists {
		return nil, ErrFAQExists
	}

	faq := &entity.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
	}
	if err := u.faqRepo.Create(tx, faq); err != nil {
		u.log.Warnf("Failed to create faq: %+v", err)
		return nil, apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Database(err)
	}

	return faq, nil
}

func (u *faqUsecase) UpdateFAQ(ctx context.Context, id int64, req *dto.UpdateFAQRequest) (*entity.FAQ, error) {
	set := query.NewUpdate().
		SetPtr("question", req.Question).
		SetPtr("answer", req.Answer)

	faq, err := u.faqRepo.Update(u.db.WithContext(ctx), id, set, nil)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update faq: %+v", err)
		return nil, apperror.Database(err)
	}
	if faq == nil {
		return nil, ErrFAQNotFound
	}
	return faq, nil
}

func (u *faqUsecase) GetFAQ(ctx context.Context, id int64) (*entity.FAQ, error) {
	faq, err := u.faqRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find faq: %+v", err)
		return nil, apperror.Database(err)
	}
	if faq == nil {
		return nil, ErrFAQNotFound
	}
	return faq, nil
}

// ListFAQ matches entries whose question contains any word of search.
func (u *faqUsecase) ListFAQ(ctx context.Context, search string, page query.Page) (*query.Result[entity.FAQ], error) {
	where := query.NewFilter(query.And).WhereAny("fq.question", query.ILike, searchTerms(search))

	faqs, err := u.faqRepo.List(u.db.WithContext(ctx), where, page, "")
	if err != nil {
		u.log.Warnf("Failed to list faq: %+v", err)
		return nil, err
	}
	return faqs, nil
}

func (u *faqUsecase) DeleteFAQ(ctx context.Context, id int64) (*entity.FAQ, error) {
	deleted, err := u.faqRepo.Delete(u.db.WithContext(ctx), query.NewFilter(query.And).Where("id", query.Eq, id, true))
	if err != nil {
		u.log.Warnf("Failed to delete faq: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrFAQNotFound
	}
	return &deleted[0], nil
}

func (u *faqUsecase) DeleteAllFAQ(ctx context.Context, actor Actor) (int64, error) {
	return deleteAll(ctx, u.db, u.log, u.faqRepo, u.auditService, actor, entity.AuditActionFAQDeleteAll, "faq")
}
