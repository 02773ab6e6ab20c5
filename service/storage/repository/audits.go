package repository

import (
	"context"

	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/pitabwire/frame"
)

type AccessAuditRepository interface {
	GetByID(ctx context.Context, id string) (*models.AccessAudit, error)
	Save(ctx context.Context, audit *models.AccessAudit) error
}

func NewAccessAuditRepository(service *frame.Service) AccessAuditRepository {
	auditRepo := accessAuditRepository{
		service: service,
	}
	return &auditRepo
}

type accessAuditRepository struct {
	service *frame.Service
}

func (ar *accessAuditRepository) GetByID(ctx context.Context, id string) (*models.AccessAudit, error) {
	audit := &models.AccessAudit{}
	err := ar.service.DB(ctx, true).First(audit, " id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return audit, nil
}

func (ar *accessAuditRepository) Save(ctx context.Context, audit *models.AccessAudit) error {
	return ar.service.DB(ctx, false).Save(audit).Error
}
