package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"unauthorized", Unauthorized("who"), http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"database", Database(errors.New("conn reset")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("loading: %w", NotFound("missing")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Event not found", MessageOf(NotFound("Event not found"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(Database(errors.New("pq: relation missing")), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("boom"), "fallback"))
}

func TestDatabase(t *testing.T) {
	assert.Nil(t, Database(nil))

	classified := Conflict("dup")
	assert.Same(t, classified, Database(classified))

	cause := errors.New("timeout")
	err := Database(cause)
	assert.True(t, Is(err, KindDatabase))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "database error: timeout", err.Error())
}

func TestPgViolations(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	foreign := &pgconn.PgError{Code: "23503", ConstraintName: "fk_events_category"}

	assert.True(t, IsUniqueViolation(unique, "users_email"))
	assert.True(t, IsUniqueViolation(unique, ""))
	assert.False(t, IsUniqueViolation(unique, "events"))
	assert.False(t, IsUniqueViolation(foreign, ""))

	assert.True(t, IsForeignKeyViolation(foreign, "FK_EVENTS_CATEGORY"))
	assert.False(t, IsForeignKeyViolation(errors.New("23503"), ""))
}
