package repository

import (
	"eventplanner/pkg/query"

	"gorm.io/gorm"
)

// ViewRepository reads rows of T from a table and its configured joins.
// Filters use the table alias; lookups that find nothing return nil, nil.
type ViewRepository[T any] interface {
	FindOne(db *gorm.DB, filter *query.Builder) (*T, error)
	FindByID(db *gorm.DB, id int64) (*T, error)
	List(db *gorm.DB, filter *query.Builder, page query.Page, sort string) (*query.Result[T], error)
}

// CrudRepository adds writes to ViewRepository. Update, Delete and Exists
// filters use bare column names.
type CrudRepository[T any] interface {
	ViewRepository[T]
	Create(db *gorm.DB, item *T) error
	Update(db *gorm.DB, id int64, set *query.Builder, scope *query.Builder) (*T, error)
	Delete(db *gorm.DB, filter *query.Builder) ([]T, error)
	DeleteAll(db *gorm.DB) (int64, error)
	Exists(db *gorm.DB, filter *query.Builder) (bool, error)
}
