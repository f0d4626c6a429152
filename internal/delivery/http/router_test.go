package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventplanner/config"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/service"
	"eventplanner/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	handler http.Handler
	jwt     *jwt.JWTService
	store   service.TokenStore
}

// setupRouter mounts the routes with empty handlers; only requests that are
// rejected before reaching a handler may be sent through it.
func setupRouter(t *testing.T, options Options) *routerFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "router-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	store := service.NewTokenStore(client)
	log, _ := test.NewNullLogger()

	r := NewRouter(
		Handlers{},
		middleware.NewAuthMiddleware(jwtService, store),
		middleware.NewCORSMiddleware("https://app.example.com"),
		middleware.NewLoggingMiddleware(log),
		options,
	)
	return &routerFixture{handler: r.Setup(), jwt: jwtService, store: store}
}

func (f *routerFixture) bearer(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, tokenID, err := f.jwt.GenerateAccessToken(userID, "router@example.com", role)
	require.NoError(t, err)
	require.NoError(t, f.store.Store(context.Background(), userID, jwt.AccessToken, tokenID, time.Minute))
	return "Bearer " + token
}

func TestRouter_HealthCheck(t *testing.T) {
	f := setupRouter(t, Options{})

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Preflight(t *testing.T) {
	f := setupRouter(t, Options{})

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/events/3/join", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	f := setupRouter(t, Options{})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/events"},
		{http.MethodPost, "/api/v1/events/1/join"},
		{http.MethodGet, "/api/v1/users/2/notifications"},
		{http.MethodPost, "/api/v1/uploads"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/admin/audit-logs"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_AdminRoutesRejectUsers(t *testing.T) {
	f := setupRouter(t, Options{})
	auth := f.bearer(t, 4, entity.RoleUser)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodDelete, "/api/v1/admin/reports"},
		{http.MethodPost, "/api/v1/admin/categories"},
		{http.MethodPatch, "/api/v1/admin/faqs/3"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			req.Header.Set("Authorization", auth)
			rec := httptest.NewRecorder()

			f.handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestRouter_NonNumericIDNotRouted(t *testing.T) {
	f := setupRouter(t, Options{})

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	disabled := setupRouter(t, Options{})
	rec := httptest.NewRecorder()
	disabled.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	enabled := setupRouter(t, Options{MetricsEnabled: true})
	rec = httptest.NewRecorder()
	enabled.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_StaticUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.txt"), []byte("cover"), 0o644))

	f := setupRouter(t, Options{StaticPrefix: "/uploads", StaticDir: dir})

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/cover.txt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cover", rec.Body.String())
}
