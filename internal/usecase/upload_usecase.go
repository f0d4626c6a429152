package usecase

import (
	"context"
	"io"
	"path/filepath"

	"eventplanner/internal/converter"
	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/internal/infrastructure/storage"
	"eventplanner/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUploadEmpty    = apperror.Validation("file must not be empty")
	ErrUploadNotFound = apperror.NotFound("Upload not found")
)

type UploadUsecase interface {
	Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (*dto.UploadResponse, error)
	GetUpload(ctx context.Context, id int64) (*dto.UploadResponse, error)
}

type uploadUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	uploadRepo repository.CrudRepository[entity.Upload]
	storage    storage.Storage
}

func NewUploadUsecase(db *gorm.DB, log *logrus.Logger, uploadRepo repository.CrudRepository[entity.Upload], store storage.Storage) UploadUsecase {
	return &uploadUsecase{
		db:         db,
		log:        log,
		uploadRepo: uploadRepo,
		storage:    store,
	}
}

// Upload writes the file to storage first; a failed insert leaves an
// orphaned object rather than a row pointing at nothing.
func (u *uploadUsecase) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (*dto.UploadResponse, error) {
	if size <= 0 {
		return nil, ErrUploadEmpty
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := u.storage.Put(ctx, storage.ObjectKey(fileName), contentType, body, size)
	if err != nil {
		u.log.Warnf("Failed to store upload: %+v", err)
		return nil, err
	}

	upload := &entity.Upload{
		FileName: filepath.Base(fileName),
		FileType: contentType,
		FileURL:  url,
		Size:     size,
	}
	if err := u.uploadRepo.Create(u.db.WithContext(ctx), upload); err != nil {
		u.log.Warnf("Failed to create upload: %+v", err)
		return nil, apperror.Database(err)
	}

	return converter.UploadToResponse(upload), nil
}

func (u *uploadUsecase) GetUpload(ctx context.Context, id int64) (*dto.UploadResponse, error) {
	upload, err := u.uploadRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find upload: %+v", err)
		return nil, apperror.Database(err)
	}
	if upload == nil {
		return nil, ErrUploadNotFound
	}
	return converter.UploadToResponse(upload), nil
}
