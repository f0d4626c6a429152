package handler

import (
	"errors"
	"net/http"

	"eventplanner/internal/usecase"
	"eventplanner/pkg/response"
)

type UploadHandler struct {
	uploadUsecase usecase.UploadUsecase
	maxSize       int64
}

func NewUploadHandler(uploadUsecase usecase.UploadUsecase, maxSize int64) *UploadHandler {
	return &UploadHandler{
		uploadUsecase: uploadUsecase,
		maxSize:       maxSize,
	}
}

// Upload handles multipart file uploads
// @Summary Upload a file
// @Tags Uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 413 {object} response.Response
// @Router /uploads [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "File is too large", nil)
			return
		}
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		response.Error(w, http.StatusRequestEntityTooLarge, "File is too large", nil)
		return
	}

	upload, err := h.uploadUsecase.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		response.FromError(w, err, "Failed to upload file")
		return
	}

	response.Success(w, http.StatusCreated, "File uploaded successfully", upload)
}

func (h *UploadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid upload ID")
		return
	}

	upload, err := h.uploadUsecase.GetUpload(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get upload")
		return
	}

	response.Success(w, http.StatusOK, "Upload retrieved successfully", upload)
}
