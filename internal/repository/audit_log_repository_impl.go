package repository

import (
	"eventplanner/internal/domain/entity"
	domainRepo "eventplanner/internal/domain/repository"
	"eventplanner/pkg/query"

	"gorm.io/gorm"
)

type auditLogRepository struct {
	logs *crudRepository[entity.AuditLog]
}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{logs: &crudRepository[entity.AuditLog]{res: AuditLogResource}}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	return r.logs.FindByID(db, id)
}

func (r *auditLogRepository) List(db *gorm.DB, filter *query.Builder, page query.Page) (*query.Result[entity.AuditLog], error) {
	return r.logs.List(db, filter, page, "")
}
