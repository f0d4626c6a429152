package usecase

import (
	"context"
	"regexp"
	"testing"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/repository"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_CreateTrimsName(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := NewCategoryUsecase(db, quietLogger(), repository.NewCrudRepository[entity.Category](repository.CategoryResource))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	category, err := uc.Create(context.Background(), &dto.NameRequest{Name: "  Music "})
	require.NoError(t, err)
	assert.Equal(t, int64(3), category.ID)
	assert.Equal(t, "Music", category.Name)
}

func TestCategory_CreateDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := NewCategoryUsecase(db, quietLogger(), repository.NewCrudRepository[entity.Category](repository.CategoryResource))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "categories"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_categories_name"})
	mock.ExpectRollback()

	_, err := uc.Create(context.Background(), &dto.NameRequest{Name: "Music"})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestNotificationType_DeleteInUse(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := NewNotificationTypeUsecase(db, quietLogger(),
		repository.NewCrudRepository[entity.NotificationType](repository.NotificationTypeResource))

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM notification_type WHERE id = $1 RETURNING *")).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_notification_notification_type"})

	_, err := uc.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "The notification type is still in use", err.Error())
}

func TestNotificationType_GetMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := NewNotificationTypeUsecase(db, quietLogger(),
		repository.NewCrudRepository[entity.NotificationType](repository.NotificationTypeResource))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT nt.* FROM notification_type nt WHERE nt.id = $1 LIMIT 1")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := uc.Get(context.Background(), 8)
	assert.ErrorIs(t, err, ErrNotificationTypeNotFound)
}

func TestCategory_ListSearch(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := NewCategoryUsecase(db, quietLogger(), repository.NewCrudRepository[entity.Category](repository.CategoryResource))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.* FROM categories c WHERE c.name ILIKE $1 ORDER BY c.name ASC, c.id ASC")).
		WithArgs("%mus%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Music"))

	res, err := uc.List(context.Background(), "mus", query.Unpaged(), "")
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
