package usecase

import (
	"context"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSuggestedItemNotFound = apperror.NotFound("Suggested item not found")
)

type SuggestedItemUsecase interface {
	CreateItem(ctx context.Context, actor Actor, req *dto.CreateSuggestedItemRequest) (*entity.SuggestedItem, error)
	UpdateItem(ctx context.Context, actor Actor, id int64, req *dto.UpdateSuggestedItemRequest) (*entity.SuggestedItem, error)
	GetItem(ctx context.Context, id int64) (*entity.SuggestedItem, error)
	ListItems(ctx context.Context, userID *int64, createdBy string, page query.Page, sort string) (*query.Result[entity.SuggestedItem], error)
	DeleteItem(ctx context.Context, actor Actor, id int64) (*entity.SuggestedItem, error)
}

type suggestedItemUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	itemRepo repository.CrudRepository[entity.SuggestedItem]
}

func NewSuggestedItemUsecase(db *gorm.DB, log *logrus.Logger, itemRepo repository.CrudRepository[entity.SuggestedItem]) SuggestedItemUsecase {
	return &suggestedItemUsecase{
		db:       db,
		log:      log,
		itemRepo: itemRepo,
	}
}

// CreateItem stores an item for the caller. Only admins may publish items
// marked as created by admin.
func (u *suggestedItemUsecase) CreateItem(ctx context.Context, actor Actor, req *dto.CreateSuggestedItemRequest) (*entity.SuggestedItem, error) {
	createdBy := entity.CreatedByUser
	if req.CreatedBy == entity.CreatedByAdmin {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		createdBy = entity.CreatedByAdmin
	}

	item := &entity.SuggestedItem{
		UserID:    actor.ID,
		Name:      req.Name,
		CreatedBy: createdBy,
	}
	if err := u.itemRepo.Create(u.db.WithContext(ctx), item); err != nil {
		u.log.Warnf("Failed to create suggested item: %+v", err)
		return nil, apperror.Database(err)
	}
	return item, nil
}

func (u *suggestedItemUsecase) UpdateItem(ctx context.Context, actor Actor, id int64, req *dto.UpdateSuggestedItemRequest) (*entity.SuggestedItem, error) {
	set := query.NewUpdate().SetPtr("name", req.Name)

	var scope *query.Builder
	if !actor.IsAdmin() {
		scope = query.NewFilter(query.And).Where("user_id", query.Eq, actor.ID, true)
	}

	item, err := u.itemRepo.Update(u.db.WithContext(ctx), id, set, scope)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update suggested item: %+v", err)
		return nil, apperror.Database(err)
	}
	if item == nil {
		return nil, ErrSuggestedItemNotFound
	}
	return item, nil
}

func (u *suggestedItemUsecase) GetItem(ctx context.Context, id int64) (*entity.SuggestedItem, error) {
	item, err := u.itemRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find suggested item: %+v", err)
		return nil, apperror.Database(err)
	}
	if item == nil {
		return nil, ErrSuggestedItemNotFound
	}
	return item, nil
}

// ListItems lists admin items together with userID's own items when userID
// is set, otherwise every item optionally narrowed by createdBy.
func (u *suggestedItemUsecase) ListItems(ctx context.Context, userID *int64, createdBy string, page query.Page, sort string) (*query.Result[entity.SuggestedItem], error) {
	var where *query.Builder
	if userID != nil {
		where = query.NewFilter(query.Or).
			Where("s.created_by", query.Eq, entity.CreatedByAdmin, true).
			Where("s.user_id", query.Eq, *userID, true)
	} else {
		where = query.NewFilter(query.And).
			Where("s.created_by", query.Eq, createdBy, createdBy != "")
	}

	items, err := u.itemRepo.List(u.db.WithContext(ctx), where, page, sort)
	if err != nil {
		u.log.Warnf("Failed to list suggested items: %+v", err)
		return nil, err
	}
	return items, nil
}

func (u *suggestedItemUsecase) DeleteItem(ctx context.Context, actor Actor, id int64) (*entity.SuggestedItem, error) {
	filter := query.NewFilter(query.And).Where("id", query.Eq, id, true)
	if !actor.IsAdmin() {
		filter.Where("user_id", query.Eq, actor.ID, true)
	}

	deleted, err := u.itemRepo.Delete(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to delete suggested item: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrSuggestedItemNotFound
	}
	return &deleted[0], nil
}
