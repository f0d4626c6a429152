package repository

import (
	"eventplanner/internal/domain/entity"
	"eventplanner/pkg/query"

	"gorm.io/gorm"
)

type UserRepository interface {
	CrudRepository[entity.User]
	// FindByEmail includes soft-deleted accounts so signup can detect them.
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindActiveByID(db *gorm.DB, id int64) (*entity.User, error)
	SoftDelete(db *gorm.DB, id int64) (bool, error)
	ListRecentlyDeleted(db *gorm.DB, page query.Page) (*query.Result[entity.DeletedUser], error)
}
