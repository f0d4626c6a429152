package repository

import (
	"eventplanner/internal/domain/entity"
	"eventplanner/pkg/query"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
	List(db *gorm.DB, filter *query.Builder, page query.Page) (*query.Result[entity.AuditLog], error)
}
