package usecase

import (
	"context"
	"regexp"
	"testing"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/repository"
	"eventplanner/internal/service"
	"eventplanner/pkg/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUserUsecase(db *gorm.DB, log *logrus.Logger, tokenStore service.TokenStore) UserUsecase {
	return NewUserUsecase(db, log,
		repository.NewUserRepository(),
		repository.NewCrudRepository[entity.Upload](repository.UploadResource),
		tokenStore,
		newAuditService(log),
	)
}

func TestUpdateProfile_EmailImmutable(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestUserUsecase(db, quietLogger(), nil)
	email := "new@example.com"

	_, err := uc.UpdateProfile(context.Background(), userActor, userActor.ID, &dto.UpdateProfileRequest{Email: &email})
	assert.ErrorIs(t, err, ErrEmailImmutable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_OtherUserForbidden(t *testing.T) {
	db, _ := setupMockDB(t)
	uc := newTestUserUsecase(db, quietLogger(), nil)
	name := "Someone Else"

	_, err := uc.UpdateProfile(context.Background(), userActor, 99, &dto.UpdateProfileRequest{FullName: &name})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProfile_UnknownUpload(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestUserUsecase(db, quietLogger(), nil)
	uploadID := int64(404)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM uploads WHERE id = $1)")).
		WithArgs(uploadID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := uc.UpdateProfile(context.Background(), userActor, userActor.ID, &dto.UpdateProfileRequest{UploadsID: &uploadID})
	assert.ErrorIs(t, err, ErrUnknownUpload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_SkipsDeletedAccounts(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestUserUsecase(db, quietLogger(), nil)
	name := "Ana Maria"

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE users SET full_name = $1, updated_at = NOW() WHERE id = $2 AND (deleted_at IS NULL) RETURNING *")).
		WithArgs(name, userActor.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := uc.UpdateProfile(context.Background(), userActor, userActor.ID, &dto.UpdateProfileRequest{FullName: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentlyDeleted_NinetyDayWindow(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestUserUsecase(db, quietLogger(), nil)
	where := "FROM users u WHERE u.deleted_at IS NOT NULL AND u.deleted_at > NOW() - INTERVAL '90 days'"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) " + where)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(where + " ORDER BY u.deleted_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "days_since_deleted", "remaining_days"}).
			AddRow(5, "gone@example.com", 12, 78))

	result, err := uc.ListRecentlyDeleted(context.Background(), query.ParsePage("1", "10"))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 12, result.Items[0].DaysSinceDeleted)
	assert.Equal(t, 78, result.Items[0].RemainingDays)
	assert.Equal(t, 90, entity.RecentlyDeletedWindowDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_RevokeFailureStillSucceeds(t *testing.T) {
	db, mock := setupMockDB(t)
	log, hook := test.NewNullLogger()
	uc := newTestUserUsecase(db, log, revokeFailingStore{})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(userActor.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectAuditInsert(mock)
	mock.ExpectCommit()

	require.NoError(t, uc.DeleteUser(context.Background(), userActor, userActor.ID))
	assert.NoError(t, mock.ExpectationsWereMet())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, userActor.ID, entry.Data["user_id"])
}

func TestDeleteUser_AlreadyDeleted(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestUserUsecase(db, quietLogger(), revokeFailingStore{})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(40)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := uc.DeleteUser(context.Background(), adminActor, 40)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
