package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUploadUsecase struct {
	mock.Mock
}

func (m *MockUploadUsecase) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (*dto.UploadResponse, error) {
	args := m.Called(ctx, fileName, contentType, body, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

func (m *MockUploadUsecase) GetUpload(ctx context.Context, id int64) (*dto.UploadResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

func multipartRequest(t *testing.T, field, fileName, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "no file"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	content := []byte("fake png bytes")
	m := new(MockUploadUsecase)
	m.On("Upload", mock.Anything, "cover.png", "image/png", mock.Anything, int64(len(content))).
		Return(&dto.UploadResponse{ID: 3, FileName: "cover.png", FileType: "image/png", FileURL: "/uploads/abc.png", Size: int64(len(content))}, nil)
	h := NewUploadHandler(m, 1<<20)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "file", "cover.png", "image/png", content))

	assert.Equal(t, http.StatusCreated, rec.Code)
	result := decodeResponse(t, rec)["result"].(map[string]any)
	assert.Equal(t, "/uploads/abc.png", result["file_url"])
	m.AssertExpectations(t)
}

func TestUploadHandler_MissingFile(t *testing.T) {
	h := NewUploadHandler(new(MockUploadUsecase), 1<<20)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "", "", "", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file is required", decodeResponse(t, rec)["message"])
}

func TestUploadHandler_NotMultipart(t *testing.T) {
	h := NewUploadHandler(new(MockUploadUsecase), 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid multipart form", decodeResponse(t, rec)["message"])
}

func TestUploadHandler_TooLarge(t *testing.T) {
	m := new(MockUploadUsecase)
	h := NewUploadHandler(m, 16)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "file", "big.bin", "application/octet-stream", bytes.Repeat([]byte("a"), 64)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "File is too large", decodeResponse(t, rec)["message"])
	m.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadHandler_GetByID(t *testing.T) {
	m := new(MockUploadUsecase)
	m.On("GetUpload", mock.Anything, int64(8)).Return(nil, usecase.ErrUploadNotFound)
	h := NewUploadHandler(m, 1<<20)

	req := withVars(httptest.NewRequest(http.MethodGet, "/api/v1/uploads/8", nil), map[string]string{"id": "8"})
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	m.AssertExpectations(t)
}
