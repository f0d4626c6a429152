package repository

import (
	"fmt"

	"eventplanner/internal/domain/entity"
	domainRepo "eventplanner/internal/domain/repository"
	"eventplanner/pkg/query"

	"gorm.io/gorm"
)

var deletedUserResource = Resource{
	Table: "users",
	Alias: "u",
	Columns: fmt.Sprintf("u.*, EXTRACT(DAY FROM (NOW() - u.deleted_at))::int AS days_since_deleted, "+
		"(%d - EXTRACT(DAY FROM (NOW() - u.deleted_at)))::int AS remaining_days", entity.RecentlyDeletedWindowDays),
	OrderBy: "u.deleted_at DESC",
}

type userRepository struct {
	*crudRepository[entity.User]
}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{crudRepository: &crudRepository[entity.User]{res: UserResource}}
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return r.FindOne(db, query.NewFilter(query.And).Where("u.email", query.Eq, email, true))
}

func (r *userRepository) FindActiveByID(db *gorm.DB, id int64) (*entity.User, error) {
	return r.FindOne(db, query.NewFilter(query.And).
		Where("u.id", query.Eq, id, true).
		Raw("u.deleted_at IS NULL"))
}

func (r *userRepository) SoftDelete(db *gorm.DB, id int64) (bool, error) {
	tx := db.Exec("UPDATE users SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *userRepository) ListRecentlyDeleted(db *gorm.DB, page query.Page) (*query.Result[entity.DeletedUser], error) {
	return query.Paginate[entity.DeletedUser](contextOf(db), db, query.List{
		Select: deletedUserResource.columns(),
		From:   deletedUserResource.from(),
		Where: fmt.Sprintf("u.deleted_at IS NOT NULL AND u.deleted_at > NOW() - INTERVAL '%d days'",
			entity.RecentlyDeletedWindowDays),
		OrderBy: deletedUserResource.OrderBy,
	}, page)
}
