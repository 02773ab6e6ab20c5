package repository

import (
	"context"
	"errors"

	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
)

// ErrDuplicateKey is returned when registering a file key that already
// exists. The registry is immutable; callers report this per item.
var ErrDuplicateKey = errors.New("file key already registered")

type FileRepository interface {
	GetByKey(ctx context.Context, key types.FileKey) (*models.FileRecord, error)
	Register(ctx context.Context, record *models.FileRecord) error
	Count(ctx context.Context) (int64, error)
}

func NewFileRepository(service *frame.Service) FileRepository {
	fileRepo := fileRepository{
		service: service,
	}
	return &fileRepo
}

type fileRepository struct {
	service *frame.Service
}

func (fr *fileRepository) GetByKey(ctx context.Context, key types.FileKey) (*models.FileRecord, error) {
	record := &models.FileRecord{}
	err := fr.service.DB(ctx, true).First(record, " file_key = ?", string(key)).Error
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (fr *fileRepository) Register(ctx context.Context, record *models.FileRecord) error {
	existing, err := fr.GetByKey(ctx, types.FileKey(record.FileKey))
	if err != nil && !frame.ErrorIsNoRows(err) {
		return err
	}
	if existing != nil {
		return ErrDuplicateKey
	}

	return fr.service.DB(ctx, false).Create(record).Error
}

func (fr *fileRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := fr.service.DB(ctx, true).Model(&models.FileRecord{}).Count(&total).Error
	return total, err
}
