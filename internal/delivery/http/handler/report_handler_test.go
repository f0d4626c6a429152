package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/query"
	"eventplanner/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReportUsecase struct {
	mock.Mock
}

func (m *MockReportUsecase) CreateReport(ctx context.Context, actor usecase.Actor, req *dto.CreateReportRequest) (*entity.Report, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Report), args.Error(1)
}

func (m *MockReportUsecase) UpdateReport(ctx context.Context, actor usecase.Actor, id int64, req *dto.UpdateReportRequest) (*entity.Report, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Report), args.Error(1)
}

func (m *MockReportUsecase) GetReport(ctx context.Context, actor usecase.Actor, id int64) (*entity.ReportView, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReportView), args.Error(1)
}

func (m *MockReportUsecase) ListReports(ctx context.Context, filter dto.ReportFilter, page query.Page) (*query.Result[entity.ReportView], error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result[entity.ReportView]), args.Error(1)
}

func (m *MockReportUsecase) ListUserReports(ctx context.Context, actor usecase.Actor, userID int64, page query.Page) (*query.Result[entity.ReportView], error) {
	args := m.Called(ctx, actor, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.Result[entity.ReportView]), args.Error(1)
}

func (m *MockReportUsecase) DeleteReport(ctx context.Context, actor usecase.Actor, id int64) (*entity.Report, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Report), args.Error(1)
}

func (m *MockReportUsecase) DeleteAllReports(ctx context.Context, actor usecase.Actor) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportUsecase) DeleteUserReports(ctx context.Context, actor usecase.Actor, userID int64) ([]entity.Report, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Report), args.Error(1)
}

var reportUser = usecase.Actor{ID: 2, Role: entity.RoleUser}

func TestReportHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *MockReportUsecase)
		wantStatus int
		wantMsg    string
	}{
		{
			name: "created",
			body: `{"reported_user_id":5,"reason":"spam"}`,
			setupMock: func(m *MockReportUsecase) {
				m.On("CreateReport", mock.Anything, reportUser, &dto.CreateReportRequest{ReportedUserID: 5, Reason: "spam"}).
					Return(&entity.Report{ID: 1, ReportCreatorID: 2, ReportedUserID: 5, Reason: "spam"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantMsg:    "Report created successfully",
		},
		{
			name:       "malformed body",
			body:       `{"reported_user_id":`,
			setupMock:  func(m *MockReportUsecase) {},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request body",
		},
		{
			name:       "missing reason",
			body:       `{"reported_user_id":5}`,
			setupMock:  func(m *MockReportUsecase) {},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Validation failed",
		},
		{
			name: "self report",
			body: `{"reported_user_id":2,"reason":"spam"}`,
			setupMock: func(m *MockReportUsecase) {
				m.On("CreateReport", mock.Anything, reportUser, mock.Anything).Return(nil, usecase.ErrReportSelf)
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "You cannot report yourself",
		},
		{
			name: "database error hides detail",
			body: `{"reported_user_id":5,"reason":"spam"}`,
			setupMock: func(m *MockReportUsecase) {
				m.On("CreateReport", mock.Anything, reportUser, mock.Anything).
					Return(nil, apperror.Database(assert.AnError))
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Failed to create report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockReportUsecase)
			tt.setupMock(m)
			h := NewReportHandler(m, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(tt.body))
			req = withActor(req, reportUser.ID, reportUser.Role)
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeResponse(t, rec)
			assert.Equal(t, tt.wantMsg, body["message"])
			m.AssertExpectations(t)
		})
	}
}

func TestReportHandler_Create_ValidationMessages(t *testing.T) {
	h := NewReportHandler(new(MockReportUsecase), validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{"reason":"spam"}`))
	req = withActor(req, reportUser.ID, reportUser.Role)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	body := decodeResponse(t, rec)
	errs, ok := body["error"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "reported_user_id is required", errs["reported_user_id"])
}

func TestReportHandler_Create_Unauthenticated(t *testing.T) {
	h := NewReportHandler(new(MockReportUsecase), validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReportHandler_Update(t *testing.T) {
	reason := "harassment"

	t.Run("not owner", func(t *testing.T) {
		m := new(MockReportUsecase)
		m.On("UpdateReport", mock.Anything, reportUser, int64(4), &dto.UpdateReportRequest{Reason: &reason}).
			Return(nil, usecase.ErrReportNotFound)
		h := NewReportHandler(m, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/reports/4", strings.NewReader(`{"reason":"harassment"}`))
		req = withVars(withActor(req, reportUser.ID, reportUser.Role), map[string]string{"id": "4"})
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Report not found", decodeResponse(t, rec)["message"])
		m.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := NewReportHandler(new(MockReportUsecase), validator.NewValidator())

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/reports/x", strings.NewReader(`{}`))
		req = withVars(withActor(req, reportUser.ID, reportUser.Role), map[string]string{"id": "x"})
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid report ID", decodeResponse(t, rec)["message"])
	})
}

func TestReportHandler_GetAll(t *testing.T) {
	m := new(MockReportUsecase)
	creator := int64(3)
	m.On("ListReports", mock.Anything,
		dto.ReportFilter{CreatorID: &creator, Reason: "spam"},
		query.Page{Number: 2, Limit: 5},
	).Return(&query.Result[entity.ReportView]{
		TotalItems:   6,
		TotalPages:   2,
		CurrentPage:  2,
		ItemsPerPage: 5,
		Items:        []entity.ReportView{{Report: entity.Report{ID: 6, ReportCreatorID: 3, Reason: "spam"}}},
	}, nil)
	h := NewReportHandler(m, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports?report_creator_id=3&reason=spam&page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	h.GetAll(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, float64(6), body["totalItems"])
	assert.Equal(t, float64(2), body["currentPage"])
	assert.Len(t, body["result"], 1)
	m.AssertExpectations(t)
}

func TestReportHandler_GetAll_EmptyPage(t *testing.T) {
	m := new(MockReportUsecase)
	m.On("ListReports", mock.Anything, dto.ReportFilter{}, query.Page{Number: 1, Limit: 10}).
		Return(&query.Result[entity.ReportView]{CurrentPage: 1, ItemsPerPage: 10}, nil)
	h := NewReportHandler(m, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.GetAll(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decodeResponse(t, rec)["result"])
}

func TestReportHandler_GetByUser_Forbidden(t *testing.T) {
	m := new(MockReportUsecase)
	m.On("ListUserReports", mock.Anything, reportUser, int64(9), query.Page{Number: 1, Limit: 10}).
		Return(nil, usecase.ErrForbidden)
	h := NewReportHandler(m, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/9/reports", nil)
	req = withVars(withActor(req, reportUser.ID, reportUser.Role), map[string]string{"userId": "9"})
	rec := httptest.NewRecorder()

	h.GetByUser(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.AssertExpectations(t)
}

func TestReportHandler_DeleteAll(t *testing.T) {
	admin := usecase.Actor{ID: 1, Role: entity.RoleAdmin}
	m := new(MockReportUsecase)
	m.On("DeleteAllReports", mock.Anything, admin).Return(int64(4), nil)
	h := NewReportHandler(m, validator.NewValidator())

	req := withActor(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/reports", nil), admin.ID, admin.Role)
	rec := httptest.NewRecorder()

	h.DeleteAll(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, map[string]any{"deleted": float64(4)}, body["result"])
	m.AssertExpectations(t)
}

func TestReportHandler_DeleteByUser(t *testing.T) {
	m := new(MockReportUsecase)
	m.On("DeleteUserReports", mock.Anything, reportUser, int64(2)).
		Return([]entity.Report{{ID: 1}, {ID: 2}}, nil)
	h := NewReportHandler(m, validator.NewValidator())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/2/reports", nil)
	req = withVars(withActor(req, reportUser.ID, reportUser.Role), map[string]string{"userId": "2"})
	rec := httptest.NewRecorder()

	h.DeleteByUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResponse(t, rec)["result"], 2)
	m.AssertExpectations(t)
}
