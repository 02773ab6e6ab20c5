package repository

import (
	"context"

	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/pitabwire/frame"
)

func Migrate(ctx context.Context, svc *frame.Service, migrationPath string) error {
	return svc.MigrateDatastore(ctx, migrationPath,
		&models.User{}, &models.FileRecord{}, &models.AccessAudit{})
}
