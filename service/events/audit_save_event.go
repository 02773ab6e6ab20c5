package events

import (
	"context"
	"errors"

	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/pitabwire/frame"
)

// AccessAuditEventName routes audit payloads to this handler.
const AccessAuditEventName = "file.access.audit.event"

type AccessAuditSaveEvent struct {
	Service         *frame.Service
	AuditRepository repository.AccessAuditRepository
}

func (aas *AccessAuditSaveEvent) Name() string {
	return AccessAuditEventName
}

func (aas *AccessAuditSaveEvent) PayloadType() any {
	return models.AccessAudit{}
}

func (aas *AccessAuditSaveEvent) Validate(_ context.Context, payload any) error {
	if _, ok := payload.(*models.AccessAudit); !ok {
		return errors.New(" payload is not of type Access Audit")
	}

	return nil
}

func (aas *AccessAuditSaveEvent) Execute(ctx context.Context, payload any) error {
	audit := payload.(*models.AccessAudit)

	logger := aas.Service.Log(ctx).WithField("payload", audit).
		WithField("type", aas.Name())
	logger.Debug("handling file access audit event")

	return aas.AuditRepository.Save(ctx, audit)

}

func NewAccessAuditSaveHandler(service *frame.Service) frame.EventI {
	auditRepository := repository.NewAccessAuditRepository(service)
	return &AccessAuditSaveEvent{service, auditRepository}
}
