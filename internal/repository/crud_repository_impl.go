package repository

import (
	"context"
	"fmt"

	domainRepo "eventplanner/internal/domain/repository"
	"eventplanner/pkg/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type crudRepository[T any] struct {
	res Resource
}

func NewCrudRepository[T any](res Resource) domainRepo.CrudRepository[T] {
	return &crudRepository[T]{res: res}
}

func NewViewRepository[T any](res Resource) domainRepo.ViewRepository[T] {
	return &crudRepository[T]{res: res}
}

func (r *crudRepository[T]) Create(db *gorm.DB, item *T) error {
	return db.Omit(clause.Associations).Create(item).Error
}

func (r *crudRepository[T]) FindOne(db *gorm.DB, filter *query.Builder) (*T, error) {
	frag, err := filter.Build()
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIMIT 1", r.res.columns(), r.res.from(), frag.SQL)
	var items []T
	tx := db.Raw(sql, frag.Args...).Scan(&items)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (r *crudRepository[T]) FindByID(db *gorm.DB, id int64) (*T, error) {
	return r.FindOne(db, query.NewFilter(query.And).Where(r.res.Col("id"), query.Eq, id, true))
}

func (r *crudRepository[T]) List(db *gorm.DB, filter *query.Builder, page query.Page, sort string) (*query.Result[T], error) {
	if filter == nil {
		filter = query.NewFilter(query.And)
	}
	frag, err := filter.BuildOptional(0)
	if err != nil {
		return nil, err
	}

	return query.Paginate[T](contextOf(db), db, query.List{
		Select:  r.res.columns(),
		From:    r.res.from(),
		Where:   frag.SQL,
		Args:    frag.Args,
		OrderBy: r.res.orderBy(sort),
	}, page)
}

// Update applies set to the row with the given id, optionally restricted by
// scope, and returns the updated row or nil when nothing matched.
func (r *crudRepository[T]) Update(db *gorm.DB, id int64, set *query.Builder, scope *query.Builder) (*T, error) {
	setFrag, err := set.Build()
	if err != nil {
		return nil, err
	}

	args := append([]any{}, setFrag.Args...)
	where := fmt.Sprintf("id = $%d", len(args)+1)
	args = append(args, id)

	if scope != nil {
		scopeFrag, err := scope.BuildOptional(len(args))
		if err != nil {
			return nil, err
		}
		if !scopeFrag.Empty() {
			where += " AND (" + scopeFrag.SQL + ")"
			args = append(args, scopeFrag.Args...)
		}
	}

	sql := fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE %s RETURNING *", r.res.Table, setFrag.SQL, where)
	var items []T
	if err := db.Raw(sql, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Delete removes the rows matched by filter and returns them. An empty
// filter is rejected; use DeleteAll to clear a table.
func (r *crudRepository[T]) Delete(db *gorm.DB, filter *query.Builder) ([]T, error) {
	frag, err := filter.Build()
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s RETURNING *", r.res.Table, frag.SQL)
	items := make([]T, 0)
	if err := db.Raw(sql, frag.Args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *crudRepository[T]) DeleteAll(db *gorm.DB) (int64, error) {
	tx := db.Exec(fmt.Sprintf("DELETE FROM %s", r.res.Table))
	return tx.RowsAffected, tx.Error
}

func (r *crudRepository[T]) Exists(db *gorm.DB, filter *query.Builder) (bool, error) {
	frag, err := filter.Build()
	if err != nil {
		return false, err
	}

	var exists bool
	sql := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", r.res.Table, frag.SQL)
	if err := db.Raw(sql, frag.Args...).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

func contextOf(db *gorm.DB) context.Context {
	if db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}
