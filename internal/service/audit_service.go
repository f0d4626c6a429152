package service

import (
	"context"

	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	// LogDelete records rows removed by actorID. Pass the transaction that
	// performed the delete so the entry commits with it.
	LogDelete(ctx context.Context, tx *gorm.DB, actorID int64, action string, resource string, removed interface{}, count int64) error
	Log(ctx context.Context, tx *gorm.DB, actorID *int64, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actorID int64, action string, resource string, removed interface{}, count int64) error {
	metadata := entity.JSON{
		"resource": resource,
		"count":    count,
	}
	if removed != nil {
		metadata["old_value"] = removed
	}
	return s.Log(ctx, tx, &actorID, action, metadata)
}

func (s *auditService) Log(ctx context.Context, tx *gorm.DB, actorID *int64, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
