package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/openrelay/service-filerelay/config"
	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

const retryCallbackPrefix = "try_again:"

// Dispatcher routes inbound platform events to the business layer and
// phrases the outcomes back to the chat. It is the only component that
// knows both the command vocabulary and the reply wording.
type Dispatcher struct {
	service     *frame.Service
	cfg         *config.FileRelayConfig
	messenger   platform.Messenger
	identity    *business.Identity
	uploader    *business.Uploader
	retriever   *business.Retriever
	broadcaster *business.Broadcaster
	stats       *business.Stats

	collector *batchCollector
}

func NewDispatcher(
	service *frame.Service,
	cfg *config.FileRelayConfig,
	messenger platform.Messenger,
	identity *business.Identity,
	uploader *business.Uploader,
	retriever *business.Retriever,
	broadcaster *business.Broadcaster,
	stats *business.Stats,
) *Dispatcher {
	d := &Dispatcher{
		service:     service,
		cfg:         cfg,
		messenger:   messenger,
		identity:    identity,
		uploader:    uploader,
		retriever:   retriever,
		broadcaster: broadcaster,
		stats:       stats,
	}
	d.collector = newBatchCollector(defaultCollectWindow, d.submitUpload)
	return d
}

// HandleEvent is the poller's dispatch target. Every interaction
// refreshes the user's identity record before routing.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev platform.Event) {
	logger := d.service.Log(ctx).WithField("user_id", ev.User)

	if _, err := d.identity.Touch(ctx, ev.User, ev.FirstName); err != nil {
		logger.WithError(err).Warn("could not refresh identity record")
	}

	switch ev.Kind {
	case platform.EventCommand:
		d.handleCommand(ctx, ev)
	case platform.EventDocument:
		d.collector.Add(ctx, ev)
	case platform.EventCallback:
		d.handleCallback(ctx, ev)
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, ev platform.Event) {
	switch ev.Command {
	case "start":
		// Deep links arrive as /start <file key>; treat them as a
		// retrieval request.
		if key := strings.TrimSpace(ev.Args); key != "" {
			d.handleRetrieve(ctx, ev, types.FileKey(key))
			return
		}
		d.send(ctx, ev.Chat, greetingText(ev.FirstName))
	case "help":
		d.send(ctx, ev.Chat, replyHelp)
	case "retrieve":
		key := strings.TrimSpace(ev.Args)
		if key == "" {
			d.send(ctx, ev.Chat, replyRetrieveUsage)
			return
		}
		d.handleRetrieve(ctx, ev, types.FileKey(key))
	case "stats":
		d.handleStats(ctx, ev)
	case "broadcast":
		d.handleBroadcast(ctx, ev)
	default:
		d.send(ctx, ev.Chat, replyHelp)
	}
}

func (d *Dispatcher) handleCallback(ctx context.Context, ev platform.Event) {
	if err := d.messenger.AcknowledgeCallback(ctx, ev.CallbackID); err != nil {
		d.service.Log(ctx).WithError(err).Debug("could not acknowledge callback")
	}

	key, ok := strings.CutPrefix(ev.CallbackData, retryCallbackPrefix)
	if !ok || key == "" {
		return
	}
	d.handleRetrieve(ctx, ev, types.FileKey(key))
}

func (d *Dispatcher) handleRetrieve(ctx context.Context, ev platform.Event, key types.FileKey) {
	logger := d.service.Log(ctx).WithField("user_id", ev.User).WithField("file_key", key)

	result, err := d.retriever.Retrieve(ctx, business.RetrievalRequest{User: ev.User, Key: key})
	if err != nil {
		if errors.Is(err, business.ErrRequestInFlight) {
			logger.Debug("duplicate retrieval dropped")
			return
		}
		logger.WithError(err).Error("retrieval failed")
		d.send(ctx, ev.Chat, replyGenericFailure)
		return
	}

	switch result.Outcome {
	case business.Granted:
		d.deliver(ctx, ev.Chat, result.Record)
	case business.DeniedNotFound:
		d.send(ctx, ev.Chat, replyNotFound)
	case business.DeniedNotSubscribed:
		err = d.messenger.SendTextWithButtons(ctx, ev.Chat,
			joinPromptText(result.Verdicts), joinPromptButtons(result.Verdicts, key))
		if err != nil {
			logger.WithError(err).Error("could not send join prompt")
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, chat types.ChatID, record *types.FileRecord) {
	link := business.ResolveDownloadLink(d.cfg.FileAccessServerUrl, record.Key)
	err := d.messenger.SendDocument(ctx, chat, record.RemoteRef, grantedCaption(record, link))
	if err != nil {
		d.service.Log(ctx).WithError(err).WithField("file_key", record.Key).
			Error("could not deliver document")
		d.send(ctx, chat, replyGenericFailure)
	}
}

func (d *Dispatcher) handleStats(ctx context.Context, ev platform.Event) {
	totals, err := d.stats.Totals(ctx, ev.User)
	if err != nil {
		if errors.Is(err, business.ErrPermissionDenied) {
			d.send(ctx, ev.Chat, replyStatsDenied)
			return
		}
		d.service.Log(ctx).WithError(err).Error("could not compute totals")
		d.send(ctx, ev.Chat, replyGenericFailure)
		return
	}
	d.send(ctx, ev.Chat, statsText(totals))
}

func (d *Dispatcher) handleBroadcast(ctx context.Context, ev platform.Event) {
	text := strings.TrimSpace(ev.Args)
	err := d.broadcaster.Broadcast(ctx, ev.User, text)
	switch {
	case err == nil:
		d.send(ctx, ev.Chat, "Broadcast queued.")
	case errors.Is(err, business.ErrPermissionDenied):
		d.send(ctx, ev.Chat, replyBroadcastDenied)
	case errors.Is(err, business.ErrEmptyBroadcast):
		d.send(ctx, ev.Chat, replyEmptyBroadcast)
	default:
		d.service.Log(ctx).WithError(err).Error("could not queue broadcast")
		d.send(ctx, ev.Chat, replyGenericFailure)
	}
}

// submitUpload is the collector's flush target.
func (d *Dispatcher) submitUpload(ctx context.Context, actor types.UserID, chat types.ChatID, payload business.UploadPayload) {
	summary, err := d.uploader.Upload(ctx, actor, payload)
	if err != nil {
		if errors.Is(err, business.ErrPermissionDenied) {
			d.send(ctx, chat, replyUploadDenied)
			return
		}
		d.service.Log(ctx).WithError(err).Error("upload failed")
		d.send(ctx, chat, replyGenericFailure)
		return
	}
	d.send(ctx, chat, uploadSummaryText(summary))
}

func (d *Dispatcher) send(ctx context.Context, chat types.ChatID, text string) {
	if err := d.messenger.SendText(ctx, chat, text); err != nil {
		util.Log(ctx).WithError(err).WithField("chat_id", chat).Error("could not send reply")
	}
}
