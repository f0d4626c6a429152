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
	ErrCategoryNotFound         = apperror.NotFound("Category not found")
	ErrCategoryExists           = apperror.Conflict("Category name already exists")
	ErrNotificationTypeNotFound = apperror.NotFound("Notification type not found")
	ErrNotificationTypeExists   = apperror.Conflict("Notification type name already exists")
)

// CatalogUsecase manages a lookup table keyed by a unique name.
type CatalogUsecase[T any] interface {
	Create(ctx context.Context, req *dto.NameRequest) (*T, error)
	Update(ctx context.Context, id int64, req *dto.NameRequest) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, search string, page query.Page, sort string) (*query.Result[T], error)
	Delete(ctx context.Context, id int64) (*T, error)
}

type catalogUsecase[T any] struct {
	db       *gorm.DB
	log      *logrus.Logger
	repo     repository.CrudRepository[T]
	name     string
	alias    string
	notFound error
	exists   error
	build    func(name string) *T
}

func NewCategoryUsecase(db *gorm.DB, log *logrus.Logger, repo repository.CrudRepository[entity.Category]) CatalogUsecase[entity.Category] {
	return &catalogUsecase[entity.Category]{
		db:       db,
		log:      log,
		repo:     repo,
		name:     "category",
		alias:    "c",
		notFound: ErrCategoryNotFound,
		exists:   ErrCategoryExists,
		build: func(name string) *entity.Category {
			return &entity.Category{Name: name}
		},
	}
}

func NewNotificationTypeUsecase(db *gorm.DB, log *logrus.Logger, repo repository.CrudRepository[entity.NotificationType]) CatalogUsecase[entity.NotificationType] {
	return &catalogUsecase[entity.NotificationType]{
		db:       db,
		log:      log,
		repo:     repo,
		name:     "notification type",
		alias:    "nt",
		notFound: ErrNotificationTypeNotFound,
		exists:   ErrNotificationTypeExists,
		build: func(name string) *entity.NotificationType {
			return &entity.NotificationType{Name: name}
		},
	}
}

func (u *catalogUsecase[T]) Create(ctx context.Context, req *dto.NameRequest) (*T, error) {
	item := u.build(strings.TrimSpace(req.Name))
	if err := u.repo.Create(u.db.WithContext(ctx), item); err != nil {
		if apperror.IsUniqueViolation(err, "name") {
			return nil, u.exists
		}
		u.log.Warnf("Failed to create %s: %+v", u.name, err)
		return nil, apperror.Database(err)
	}
	return item, nil
}

func (u *catalogUsecase[T]) Update(ctx context.Context, id int64, req *dto.NameRequest) (*T, error) {
	set := query.NewUpdate().Set("name", strings.TrimSpace(req.Name), true)

	item, err := u.repo.Update(u.db.WithContext(ctx), id, set, nil)
	if err != nil {
		if apperror.IsUniqueViolation(err, "name") {
			return nil, u.exists
		}
		u.log.Warnf("Failed to update %s: %+v", u.name, err)
		return nil, apperror.Database(err)
	}
	if item == nil {
		return nil, u.notFound
	}
	return item, nil
}

func (u *catalogUsecase[T]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := u.repo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find %s: %+v", u.name, err)
		return nil, apperror.Database(err)
	}
	if item == nil {
		return nil, u.notFound
	}
	return item, nil
}

func (u *catalogUsecase[T]) List(ctx context.Context, search string, page query.Page, sort string) (*query.Result[T], error) {
	where := query.NewFilter(query.And).
		Where(u.alias+".name", query.ILike, contains(search), strings.TrimSpace(search) != "")

	items, err := u.repo.List(u.db.WithContext(ctx), where, page, sort)
	if err != nil {
		u.log.Warnf("Failed to list %s: %+v", u.name, err)
		return nil, err
	}
	return items, nil
}

func (u *catalogUsecase[T]) Delete(ctx context.Context, id int64) (*T, error) {
	deleted, err := u.repo.Delete(u.db.WithContext(ctx), query.NewFilter(query.And).Where("id", query.Eq, id, true))
	if err != nil {
		if apperror.IsForeignKeyViolation(err, "") {
			return nil, apperror.Conflict("The " + u.name + " is still in use")
		}
		u.log.Warnf("Failed to delete %s: %+v", u.name, err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, u.notFound
	}
	return &deleted[0], nil
}
