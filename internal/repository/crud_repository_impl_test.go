package repository

import (
	"errors"
	"regexp"
	"testing"

	"eventplanner/internal/domain/entity"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"})
}

func TestCrudRepository_FindByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.Category](CategoryResource)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.* FROM categories c WHERE c.id = $1 LIMIT 1")).
		WithArgs(int64(7)).
		WillReturnRows(categoryRows().AddRow(7, "Music", nil, nil))

	category, err := repo.FindByID(db, 7)
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, "Music", category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepository_FindByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.Category](CategoryResource)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.* FROM categories c WHERE c.id = $1 LIMIT 1")).
		WithArgs(int64(99)).
		WillReturnRows(categoryRows())

	category, err := repo.FindByID(db, 99)
	require.NoError(t, err)
	assert.Nil(t, category)
}

func TestCrudRepository_List_SortAllowlist(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.Category](CategoryResource)

	where := query.NewFilter(query.And).Where("c.name", query.ILike, "%mus%", true)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM categories c WHERE c.name ILIKE $1")).
		WithArgs("%mus%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.* FROM categories c WHERE c.name ILIKE $1 ORDER BY c.name DESC, c.id DESC LIMIT $2 OFFSET $3")).
		WithArgs("%mus%", 10, 0).
		WillReturnRows(categoryRows().AddRow(1, "Music", nil, nil))

	res, err := repo.List(db, where, query.ParsePage("1", "10"), "-name")
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, int64(1), res.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepository_Update_ScopeIsGrouped(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.Report](ReportResource)

	set := query.NewUpdate().Set("reason", "spam", true)
	scope := query.NewFilter(query.Or).
		Where("report_creator_id", query.Eq, int64(3), true).
		Where("reported_user_id", query.Eq, int64(3), true)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE report SET reason = $1, updated_at = NOW() WHERE id = $2 AND (report_creator_id = $3 OR reported_user_id = $4) RETURNING *")).
		WithArgs("spam", int64(5), int64(3), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_creator_id", "reported_user_id", "reason"}).AddRow(5, 3, 8, "spam"))

	report, err := repo.Update(db, 5, set, scope)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, "spam", report.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepository_Update_NoFields(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewCrudRepository[entity.Report](ReportResource)

	_, err := repo.Update(db, 5, query.NewUpdate(), nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCrudRepository_Update_NoMatch(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.Category](CategoryResource)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE categories SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING *")).
		WithArgs("Food", int64(4)).
		WillReturnRows(categoryRows())

	category, err := repo.Update(db, 4, query.NewUpdate().Set("name", "Food", true), nil)
	require.NoError(t, err)
	assert.Nil(t, category)
}

func TestCrudRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.Category](CategoryResource)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1 RETURNING *")).
		WithArgs(int64(2)).
		WillReturnRows(categoryRows().AddRow(2, "Sports", nil, nil))

	deleted, err := repo.Delete(db, query.NewFilter(query.And).Where("id", query.Eq, int64(2), true))
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "Sports", deleted[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepository_Delete_RejectsEmptyFilter(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewCrudRepository[entity.Category](CategoryResource)

	_, err := repo.Delete(db, query.NewFilter(query.And))
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCrudRepository_DeleteAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.FAQ](FAQResource)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faq")).
		WillReturnResult(sqlmock.NewResult(0, 6))

	count, err := repo.DeleteAll(db)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.FAQ](FAQResource)

	filter := query.NewFilter(query.And).
		Where("question", query.Eq, "Where?", true).
		Where("answer", query.Eq, "Here.", true)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM faq WHERE question = $1 AND answer = $2)")).
		WithArgs("Where?", "Here.").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(db, filter)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCrudRepository_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCrudRepository[entity.Category](CategoryResource)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.* FROM categories c")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByID(db, 1)
	assert.Error(t, err)
}

func TestResource_OrderBy(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want string
	}{
		{"default", "", "c.name ASC, c.id ASC"},
		{"ascending", "created_at", "c.created_at ASC, c.id ASC"},
		{"dash descending", "-created_at", "c.created_at DESC, c.id DESC"},
		{"suffix descending", "name:desc", "c.name DESC, c.id DESC"},
		{"unknown key", "password", "c.name ASC, c.id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryResource.orderBy(tt.sort))
		})
	}

	assert.Equal(t, "up.id DESC", UploadResource.orderBy(""))
}
