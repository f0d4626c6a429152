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
	ErrBlockNotFound     = apperror.NotFound("Block not found")
	ErrBlockSelf         = apperror.Validation("You cannot block yourself")
	ErrAlreadyBlocked    = apperror.Conflict("User is already blocked")
	ErrBlockedUserAbsent = apperror.NotFound("User to block not found")
)

type BlockUsecase interface {
	BlockUser(ctx context.Context, actor Actor, req *dto.CreateBlockRequest) (*entity.BlockUser, error)
	UpdateBlock(ctx context.Context, actor Actor, id int64, req *dto.UpdateBlockRequest) (*entity.BlockUser, error)
	GetBlock(ctx context.Context, actor Actor, id int64) (*entity.BlockView, error)
	ListBlocks(ctx context.Context, filter dto.BlockFilter, page query.Page) (*query.Result[entity.BlockView], error)
	ListUserBlocks(ctx context.Context, actor Actor, userID int64, page query.Page) (*query.Result[entity.BlockView], error)
	DeleteBlock(ctx context.Context, actor Actor, id int64) (*entity.BlockUser, error)
	DeleteAllBlocks(ctx context.Context, actor Actor) (int64, error)
	DeleteUserBlocks(ctx context.Context, actor Actor, userID int64) ([]entity.BlockUser, error)
}

type blockUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	blockRepo    repository.CrudRepository[entity.BlockUser]
	blockViews   repository.ViewRepository[entity.BlockView]
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewBlockUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	blockRepo repository.CrudRepository[entity.BlockUser],
	blockViews repository.ViewRepository[entity.BlockView],
	userRepo repository.UserRepository,
	auditService service.AuditService,
) BlockUsecase {
	return &blockUsecase{
		db:           db,
		log:          log,
		blockRepo:    blockRepo,
		blockViews:   blockViews,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *blockUsecase) BlockUser(ctx context.Context, actor Actor, req *dto.CreateBlockRequest) (*entity.BlockUser, error) {
	if req.BlockUserID == actor.ID {
		return nil, ErrBlockSelf
	}

	db := u.db.WithContext(ctx)
	target, err := u.userRepo.FindActiveByID(db, req.BlockUserID)
	if err != nil {
		u.log.Warnf("Failed to find user to block: %+v", err)
		return nil, apperror.Database(err)
	}
	if target == nil {
		return nil, ErrBlockedUserAbsent
	}

	block := &entity.BlockUser{
		BlockCreatorID: actor.ID,
		BlockUserID:    req.BlockUserID,
		Status:         true,
	}
	if err := u.blockRepo.Create(db, block); err != nil {
		if apperror.IsUniqueViolation(err, "block_users_pair") {
			return nil, ErrAlreadyBlocked
		}
		u.log.Warnf("Failed to create block: %+v", err)
		return nil, apperror.Database(err)
	}

	return block, nil
}

func (u *blockUsecase) UpdateBlock(ctx context.Context, actor Actor, id int64, req *dto.UpdateBlockRequest) (*entity.BlockUser, error) {
	set := query.NewUpdate().SetPtr("status", req.Status)

	var scope *query.Builder
	if !actor.IsAdmin() {
		scope = query.NewFilter(query.And).Where("block_creator_id", query.Eq, actor.ID, true)
	}

	block, err := u.blockRepo.Update(u.db.WithContext(ctx), id, set, scope)
	if err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return nil, err
		}
		u.log.Warnf("Failed to update block: %+v", err)
		return nil, apperror.Database(err)
	}
	if block == nil {
		return nil, ErrBlockNotFound
	}
	return block, nil
}

func (u *blockUsecase) GetBlock(ctx context.Context, actor Actor, id int64) (*entity.BlockView, error) {
	block, err := u.blockViews.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find block: %+v", err)
		return nil, apperror.Database(err)
	}
	if block == nil || !actor.CanActFor(block.BlockCreatorID) {
		return nil, ErrBlockNotFound
	}
	return block, nil
}

func (u *blockUsecase) ListBlocks(ctx context.Context, filter dto.BlockFilter, page query.Page) (*query.Result[entity.BlockView], error) {
	where := query.NewFilter(query.And).
		WherePtr("b.block_creator_id", query.Eq, filter.CreatorID).
		WherePtr("b.block_user_id", query.Eq, filter.BlockUserID).
		WherePtr("b.status", query.Eq, filter.Status)

	blocks, err := u.blockViews.List(u.db.WithContext(ctx), where, page, "")
	if err != nil {
		u.log.Warnf("Failed to list blocks: %+v", err)
		return nil, err
	}
	return blocks, nil
}

// ListUserBlocks lists the users blocked by userID.
func (u *blockUsecase) ListUserBlocks(ctx context.Context, actor Actor, userID int64, page query.Page) (*query.Result[entity.BlockView], error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}
	return u.ListBlocks(ctx, dto.BlockFilter{CreatorID: &userID}, page)
}

func (u *blockUsecase) DeleteBlock(ctx context.Context, actor Actor, id int64) (*entity.BlockUser, error) {
	filter := query.NewFilter(query.And).Where("id", query.Eq, id, true)
	if !actor.IsAdmin() {
		filter.Where("block_creator_id", query.Eq, actor.ID, true)
	}

	deleted, err := u.blockRepo.Delete(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to delete block: %+v", err)
		return nil, apperror.Database(err)
	}
	if len(deleted) == 0 {
		return nil, ErrBlockNotFound
	}
	return &deleted[0], nil
}

func (u *blockUsecase) DeleteAllBlocks(ctx context.Context, actor Actor) (int64, error) {
	return deleteAll(ctx, u.db, u.log, u.blockRepo, u.auditService, actor, entity.AuditActionBlockDeleteAll, "block")
}

func (u *blockUsecase) DeleteUserBlocks(ctx context.Context, actor Actor, userID int64) ([]entity.BlockUser, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}

	deleted, err := u.blockRepo.Delete(u.db.WithContext(ctx),
		query.NewFilter(query.And).Where("block_creator_id", query.Eq, userID, true))
	if err != nil {
		u.log.Warnf("Failed to delete blocks: %+v", err)
		return nil, apperror.Database(err)
	}
	return deleted, nil
}
