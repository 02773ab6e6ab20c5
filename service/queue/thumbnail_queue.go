package queue

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/openrelay/service-filerelay/service/queue/thumbnailer"
	"github.com/openrelay/service-filerelay/service/storage"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
)

type ThumbnailQueueHandler struct {
	service  *frame.Service
	registry repository.FileRepository
	provider storage.Provider
}

func (tq *ThumbnailQueueHandler) Handle(ctx context.Context, _ map[string]string, payload []byte) error {

	logger := tq.service.Log(ctx)

	thumbnailPayload := map[string]string{}
	err := json.Unmarshal(payload, &thumbnailPayload)
	if err != nil {
		return err
	}

	record, err := tq.registry.GetByKey(ctx, types.FileKey(thumbnailPayload["file_key"]))
	if err != nil {
		return err
	}

	if !strings.HasPrefix(record.Mimetype, "image") {
		return nil
	}

	err = thumbnailer.GenerateThumbnails(ctx, thumbnailer.DefaultSizes, record, tq.provider, logger)
	if err != nil {
		logger.WithError(err).Warn("Error generating thumbnails")
	}

	return nil

}

func NewThumbnailQueueHandler(service *frame.Service, registry repository.FileRepository, provider storage.Provider) ThumbnailQueueHandler {
	return ThumbnailQueueHandler{
		service:  service,
		registry: registry,
		provider: provider,
	}
}
