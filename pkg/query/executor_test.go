package query

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"eventplanner/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID   int64
	Name string
}

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

func rows(from, to int) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"id", "name"})
	for i := from; i <= to; i++ {
		r.AddRow(i, "abc")
	}
	return r
}

func TestList_FetchSQL(t *testing.T) {
	l := List{Select: "c.*", From: "categories c", Where: "c.name ILIKE $1", Args: []any{"%a%"}, OrderBy: "c.id"}

	sql, args := l.FetchSQL(Page{Number: 3, Limit: 5})
	assert.Equal(t, "SELECT c.* FROM categories c WHERE c.name ILIKE $1 ORDER BY c.id LIMIT $2 OFFSET $3", sql)
	assert.Equal(t, []any{"%a%", 5, 10}, args)

	sql, args = l.FetchSQL(Unpaged())
	assert.Equal(t, "SELECT c.* FROM categories c WHERE c.name ILIKE $1 ORDER BY c.id", sql)
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
	assert.Equal(t, []any{"%a%"}, args)

	assert.Equal(t, "SELECT COUNT(*) FROM categories c WHERE c.name ILIKE $1", l.CountSQL())
}

// name=abc, page 2, limit 10 over 25 matches: offset 10, rows 11-20, 3 pages.
func TestPaginate_SecondPage(t *testing.T) {
	db, mock := setupMockDB(t)

	l := List{From: "items", Where: "name = $1", Args: []any{"abc"}, OrderBy: "id"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items WHERE name = $1")).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM items WHERE name = $1 ORDER BY id LIMIT $2 OFFSET $3")).
		WithArgs("abc", 10, 10).
		WillReturnRows(rows(11, 20))

	res, err := Paginate[row](context.Background(), db, l, ParsePage("2", "10"))
	require.NoError(t, err)

	assert.Len(t, res.Items, 10)
	assert.Equal(t, int64(11), res.Items[0].ID)
	assert.Equal(t, int64(20), res.Items[9].ID)
	assert.Equal(t, int64(25), res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 10, res.ItemsPerPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_All(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM items ORDER BY id")).
		WillReturnRows(rows(1, 4))

	res, err := Paginate[row](context.Background(), db, List{From: "items", OrderBy: "id"}, ParsePage("", "ALL"))
	require.NoError(t, err)

	assert.Len(t, res.Items, 4)
	assert.Equal(t, int64(4), res.TotalItems)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 4, res.ItemsPerPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_EmptyIsSuccess(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items WHERE name = $1")).
		WithArgs("nothing").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	res, err := Paginate[row](context.Background(), db,
		List{From: "items", Where: "name = $1", Args: []any{"nothing"}}, ParsePage("1", "10"))
	require.NoError(t, err)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.TotalItems)
	assert.Equal(t, 0, res.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_AllEmpty(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM items")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	res, err := Paginate[row](context.Background(), db, List{From: "items"}, Unpaged())
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.TotalPages)
}

func TestPaginate_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items")).
		WillReturnError(errors.New("connection reset"))

	_, err := Paginate[row](context.Background(), db, List{From: "items"}, ParsePage("1", "10"))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindDatabase))
	assert.Equal(t, "Internal server error", apperror.MessageOf(err, "Internal server error"))
}

func TestPaginate_PageBeyondEndSkipsFetch(t *testing.T) {
	db, mock := setupMockDB(t)

	l := List{From: "items", OrderBy: "id"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	res, err := Paginate[row](context.Background(), db, l, ParsePage("922337203685477590", "10"))
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Equal(t, int64(25), res.TotalItems)
	assert.Equal(t, 3, res.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
