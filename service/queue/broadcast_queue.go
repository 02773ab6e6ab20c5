package queue

import (
	"context"
	"encoding/json"

	"github.com/openrelay/service-filerelay/config"
	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
)

// BroadcastQueueHandler fans one queued broadcast out to every known
// user. One failed recipient (user blocked the bot, dead chat) is
// logged and skipped; the remaining sends always proceed.
type BroadcastQueueHandler struct {
	service   *frame.Service
	users     repository.UserRepository
	messenger platform.Messenger
}

func (bq *BroadcastQueueHandler) Handle(ctx context.Context, _ map[string]string, payload []byte) error {

	logger := bq.service.Log(ctx)

	broadcastPayload := map[string]string{}
	err := json.Unmarshal(payload, &broadcastPayload)
	if err != nil {
		return err
	}

	text := broadcastPayload["text"]
	if text == "" {
		return nil
	}

	recipients, err := bq.users.All(ctx)
	if err != nil {
		return err
	}

	cfg := bq.service.Config().(*config.FileRelayConfig)

	delivered := 0
	failed := 0
	for _, recipient := range recipients {
		sendCtx, cancel := context.WithTimeout(ctx, cfg.PlatformRequestTimeout())
		err = bq.messenger.SendText(sendCtx, types.ChatID(recipient.TelegramID), text)
		cancel()
		if err != nil {
			failed++
			logger.WithError(err).WithField("telegram_id", recipient.TelegramID).
				Warn("broadcast send failed, continuing")
			continue
		}
		delivered++
	}

	logger.With(
		"delivered", delivered,
		"failed", failed,
	).Info("broadcast completed")

	return nil

}

func NewBroadcastQueueHandler(service *frame.Service, users repository.UserRepository, messenger platform.Messenger) BroadcastQueueHandler {
	return BroadcastQueueHandler{
		service:   service,
		users:     users,
		messenger: messenger,
	}
}
