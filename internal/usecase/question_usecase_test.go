package usecase

import (
	"context"
	"regexp"
	"testing"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/repository"
	"eventplanner/pkg/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestQuestionUsecase(db *gorm.DB) QuestionUsecase {
	log := quietLogger()
	return NewQuestionUsecase(db, log,
		repository.NewCrudRepository[entity.QuestionType](repository.QuestionTypeResource),
		repository.NewCrudRepository[entity.QuestionTypeResponse](repository.QuestionResponseResource),
		newAuditService(log),
	)
}

func TestCreateResponse_UnknownQuestionType(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestQuestionUsecase(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT q.* FROM question_types q WHERE q.id = $1 LIMIT 1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := uc.CreateResponse(context.Background(), userActor, &dto.CreateQuestionResponseRequest{QuestionTypesID: 9, Text: "Jazz", Type: "event"})
	assert.ErrorIs(t, err, ErrQuestionTypeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateResponse_OwnedByActor(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestQuestionUsecase(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT q.* FROM question_types q WHERE q.id = $1 LIMIT 1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "type"}).AddRow(9, "Favourite music?", "event"))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "question_type_responses"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))
	mock.ExpectCommit()

	response, err := uc.CreateResponse(context.Background(), userActor, &dto.CreateQuestionResponseRequest{QuestionTypesID: 9, Text: "Jazz", Type: "event"})
	require.NoError(t, err)
	assert.Equal(t, userActor.ID, response.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateResponse_ScopedToAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestQuestionUsecase(db)
	text := "Rock"

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE question_type_responses SET text = $1, updated_at = NOW() WHERE id = $2 AND (user_id = $3) RETURNING *")).
		WithArgs(text, int64(30), userActor.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := uc.UpdateResponse(context.Background(), userActor, 30, &dto.UpdateQuestionResponseRequest{Text: &text})
	assert.ErrorIs(t, err, ErrQuestionResponseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateResponse_AdminUnscoped(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestQuestionUsecase(db)
	text := "Rock"

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE question_type_responses SET text = $1, updated_at = NOW() WHERE id = $2 RETURNING *")).
		WithArgs(text, int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "text"}).AddRow(30, 7, text))

	response, err := uc.UpdateResponse(context.Background(), adminActor, 30, &dto.UpdateQuestionResponseRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, int64(7), response.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteResponse_ScopedToAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestQuestionUsecase(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM question_type_responses WHERE id = $1 AND user_id = $2 RETURNING *")).
		WithArgs(int64(30), userActor.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := uc.DeleteResponse(context.Background(), userActor, 30)
	assert.ErrorIs(t, err, ErrQuestionResponseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserResponses(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestQuestionUsecase(db)

	_, err := uc.DeleteUserResponses(context.Background(), userActor, 99, "")
	assert.ErrorIs(t, err, ErrForbidden)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM question_type_responses WHERE user_id = $1 AND type = $2 RETURNING *")).
		WithArgs(userActor.ID, "food").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type"}).AddRow(30, 2, "food").AddRow(31, 2, "food"))

	deleted, err := uc.DeleteUserResponses(context.Background(), userActor, userActor.ID, "food")
	require.NoError(t, err)
	assert.Len(t, deleted, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListResponses_Filters(t *testing.T) {
	db, mock := setupMockDB(t)
	uc := newTestQuestionUsecase(db)
	userID := int64(7)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM question_type_responses qr WHERE qr.user_id = $1 AND qr.type = $2")).
		WithArgs(userID, "location").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	result, err := uc.ListResponses(context.Background(), dto.QuestionResponseFilter{UserID: &userID, Type: "location"}, query.ParsePage("1", "10"))
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
