package usecase

import (
	"context"

	"eventplanner/internal/converter"
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
	ErrEmailImmutable = apperror.Validation("Email cannot be updated")
	ErrUnknownUpload  = apperror.Validation("Upload not found")
)

type UserUsecase interface {
	GetUser(ctx context.Context, id int64) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter dto.UserFilter, page query.Page, sort string) (*query.Result[dto.UserResponse], error)
	UpdateProfile(ctx context.Context, actor Actor, id int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, id int64) error
	ListRecentlyDeleted(ctx context.Context, page query.Page) (*query.Result[entity.DeletedUser], error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	uploadRepo   repository.CrudRepository[entity.Upload]
	tokenStore   service.TokenStore
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	uploadRepo repository.CrudRepository[entity.Upload],
	tokenStore service.TokenStore,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		uploadRepo:   uploadRepo,
		tokenStore:   tokenStore,
		auditService: auditService,
	}
}

func (u *userUsecase) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) ListUsers(ctx context.Context, filter dto.UserFilter, page query.Page, sort string) (*query.Result[dto.UserResponse], error) {
	where := query.NewFilter(query.And).
		Raw("u.deleted_at IS NULL").
		Where("u.role", query.Eq, filter.Role, filter.Role != "").
		Where("u.signup_type", query.Eq, filter.SignupType, filter.SignupType != "").
		Where("u.email", query.ILike, contains(filter.Search), filter.Search != "")

	users, err := u.userRepo.List(u.db.WithContext(ctx), where, page, sort)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return mapResult(users, func(user *entity.User) dto.UserResponse {
		return *converter.UserToResponse(user)
	}), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, actor Actor, id int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if !actor.CanActFor(id) {
		return nil, ErrForbidden
	}
	if req.Email != nil {
		return nil, ErrEmailImmutable
	}

	db := u.db.WithContext(ctx)
	if req.UploadsID != nil {
		exists, err := u.uploadRepo.Exists(db, query.NewFilter(query.And).Where("id", query.Eq, *req.UploadsID, true))
		if err != nil {
			u.log.Warnf("Failed to check upload: %+v", err)
			return nil, apperror.Database(err)
		}
		if !exists {
			return nil, ErrUnknownUpload
		}
	}

	set := query.NewUpdate().
		SetPtr("full_name", req.FullName).
		SetPtr("bio", req.Bio).
		SetPtr("uploads_id", req.UploadsID).
		Set("event_type_preferences", stringList(req.EventTypePreferences), req.EventTypePreferences != nil).
		Set("food_preferences", stringList(req.FoodPreferences), req.FoodPreferences != nil)
	scope := query.NewFilter(query.And).Raw("deleted_at IS NULL")

	user, err := u.userRepo.Update(db, id, set, scope)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// DeleteUser soft-deletes the account and signs it out everywhere.
func (u *userUsecase) DeleteUser(ctx context.Context, actor Actor, id int64) error {
	if !actor.CanActFor(id) {
		return ErrForbidden
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, err := u.userRepo.SoftDelete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return apperror.Database(err)
	}
	if !deleted {
		return ErrUserNotFound
	}

	if err := u.auditService.Log(ctx, tx, &actor.ID, entity.AuditActionUserDelete, entity.JSON{"user_id": id}); err != nil {
		return apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return apperror.Database(err)
	}

	// The delete has committed; leftover tokens lapse with their TTL.
	if err := u.tokenStore.RevokeAll(ctx, id); err != nil {
		u.log.WithField("user_id", id).Warnf("Failed to revoke tokens: %+v", err)
	}

	return nil
}

func (u *userUsecase) ListRecentlyDeleted(ctx context.Context, page query.Page) (*query.Result[entity.DeletedUser], error) {
	users, err := u.userRepo.ListRecentlyDeleted(u.db.WithContext(ctx), page)
	if err != nil {
		u.log.Warnf("Failed to list deleted users: %+v", err)
		return nil, err
	}
	return users, nil
}
