package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/query"

	"github.com/gorilla/mux"
)

// actorFromRequest reads the authenticated caller set by AuthMiddleware.
func actorFromRequest(r *http.Request) (usecase.Actor, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	role, _ := middleware.GetRoleFromContext(r.Context())
	return usecase.Actor{ID: userID, Role: role}, true
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pageFromQuery(r *http.Request) query.Page {
	q := r.URL.Query()
	return query.ParsePage(q.Get("page"), q.Get("limit"))
}

// queryInt64 returns nil for an absent or malformed parameter.
func queryInt64(r *http.Request, name string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get(name)), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(r *http.Request, name string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return nil
	}
	return &v
}

func queryTime(r *http.Request, name string) *time.Time {
	v, err := time.Parse(time.RFC3339, strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return nil
	}
	return &v
}
