package handler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/types"
)

const defaultCollectWindow = 1500 * time.Millisecond

// flushFunc receives a completed submission once its collection window
// closes. A single document flushes immediately as SinglePayload.
type flushFunc func(ctx context.Context, actor types.UserID, chat types.ChatID, payload business.UploadPayload)

type pendingBatch struct {
	actor types.UserID
	chat  types.ChatID
	items []business.UploadItem
}

// batchCollector reassembles media groups. The platform delivers the
// members of one album as separate document events sharing a group id,
// with no end-of-group marker; the collector buffers them and flushes
// when no further member arrives within the window.
type batchCollector struct {
	mu      sync.Mutex
	pending map[string]*pendingBatch
	window  time.Duration
	flush   flushFunc
}

func newBatchCollector(window time.Duration, flush flushFunc) *batchCollector {
	if window <= 0 {
		window = defaultCollectWindow
	}
	return &batchCollector{
		pending: make(map[string]*pendingBatch),
		window:  window,
		flush:   flush,
	}
}

func (c *batchCollector) Add(ctx context.Context, ev platform.Event) {
	item := uploadItemOf(ev)

	if ev.MediaGroupID == "" {
		c.flush(ctx, ev.User, ev.Chat, business.SinglePayload{Item: item})
		return
	}

	groupKey := groupKeyOf(ev)

	c.mu.Lock()
	batch, ok := c.pending[groupKey]
	if !ok {
		batch = &pendingBatch{actor: ev.User, chat: ev.Chat}
		c.pending[groupKey] = batch

		time.AfterFunc(c.window, func() {
			c.flushGroup(ctx, groupKey)
		})
	}
	batch.items = append(batch.items, item)
	c.mu.Unlock()
}

func (c *batchCollector) flushGroup(ctx context.Context, groupKey string) {
	c.mu.Lock()
	batch, ok := c.pending[groupKey]
	delete(c.pending, groupKey)
	c.mu.Unlock()

	if !ok || len(batch.items) == 0 {
		return
	}

	if len(batch.items) == 1 {
		c.flush(ctx, batch.actor, batch.chat, business.SinglePayload{Item: batch.items[0]})
		return
	}
	c.flush(ctx, batch.actor, batch.chat, business.BatchPayload{Items: batch.items})
}

func groupKeyOf(ev platform.Event) string {
	return fmt.Sprintf("%d/%s", ev.User, ev.MediaGroupID)
}

func uploadItemOf(ev platform.Event) business.UploadItem {
	doc := ev.Document
	return business.UploadItem{
		Ref:       doc.Ref,
		UniqueID:  doc.UniqueID,
		Name:      doc.Name,
		Size:      doc.Size,
		Mimetype:  doc.Mimetype,
		IsImage:   doc.IsImage,
		FromChat:  ev.Chat,
		MessageID: ev.MessageID,
	}
}
