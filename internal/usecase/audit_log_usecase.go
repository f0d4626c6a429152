package usecase

import (
	"context"

	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = apperror.NotFound("Audit log not found")
)

type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, action string, userID *int64, page query.Page) (*query.Result[entity.AuditLog], error)
	GetAuditLog(ctx context.Context, id int64) (*entity.AuditLog, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, action string, userID *int64, page query.Page) (*query.Result[entity.AuditLog], error) {
	where := query.NewFilter(query.And).
		Where("al.action", query.Eq, action, action != "").
		WherePtr("al.user_id", query.Eq, userID)

	logs, err := u.auditLogRepo.List(u.db.WithContext(ctx), where, page)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}
	return logs, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*entity.AuditLog, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, apperror.Database(err)
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}
	return auditLog, nil
}
