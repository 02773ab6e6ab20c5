package business

import (
	"context"
	"errors"

	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
)

// ErrEmptyBroadcast rejects a broadcast with no message text.
var ErrEmptyBroadcast = errors.New("broadcast text is empty")

// Broadcaster admits the actor and hands the message to the fan-out
// queue. Delivery to each user happens on the queue subscriber so the
// admission and retrieval paths are never blocked by a slow broadcast.
type Broadcaster struct {
	service   *frame.Service
	admission *Admission
	queueName string
}

func NewBroadcaster(service *frame.Service, admission *Admission, queueName string) *Broadcaster {
	return &Broadcaster{
		service:   service,
		admission: admission,
		queueName: queueName,
	}
}

func (b *Broadcaster) Broadcast(ctx context.Context, actor types.UserID, text string) error {
	if !b.admission.IsAdmin(actor) {
		return ErrPermissionDenied
	}
	if text == "" {
		return ErrEmptyBroadcast
	}

	return b.service.QueueManager().Publish(ctx, b.queueName, map[string]string{
		"text": text,
	})
}
