package handler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedFlush struct {
	actor   types.UserID
	chat    types.ChatID
	payload business.UploadPayload
}

type flushRecorder struct {
	mu      sync.Mutex
	flushes []capturedFlush
}

func (r *flushRecorder) flush(_ context.Context, actor types.UserID, chat types.ChatID, payload business.UploadPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes = append(r.flushes, capturedFlush{actor: actor, chat: chat, payload: payload})
}

func (r *flushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flushes)
}

func documentEvent(user int64, uniqueID, groupID string) platform.Event {
	return platform.Event{
		Kind: platform.EventDocument,
		User: types.UserID(user),
		Chat: types.ChatID(user),
		Document: &platform.DocumentInfo{
			Ref:      types.RemoteRef("ref-" + uniqueID),
			UniqueID: uniqueID,
			Name:     uniqueID + ".pdf",
		},
		MediaGroupID: groupID,
	}
}

func TestCollectorFlushesStandaloneImmediately(t *testing.T) {
	recorder := &flushRecorder{}
	collector := newBatchCollector(time.Hour, recorder.flush)

	collector.Add(context.Background(), documentEvent(7, "solo", ""))

	require.Equal(t, 1, recorder.count())
	payload, ok := recorder.flushes[0].payload.(business.SinglePayload)
	require.True(t, ok)
	assert.Equal(t, "solo", payload.Item.UniqueID)
}

func TestCollectorAggregatesMediaGroup(t *testing.T) {
	recorder := &flushRecorder{}
	collector := newBatchCollector(20*time.Millisecond, recorder.flush)

	ctx := context.Background()
	collector.Add(ctx, documentEvent(7, "first", "group-1"))
	collector.Add(ctx, documentEvent(7, "second", "group-1"))

	assert.Equal(t, 0, recorder.count(), "group must not flush before the window closes")

	assert.Eventually(t, func() bool {
		return recorder.count() == 1
	}, time.Second, 5*time.Millisecond)

	payload, ok := recorder.flushes[0].payload.(business.BatchPayload)
	require.True(t, ok)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, "first", payload.Items[0].UniqueID)
	assert.Equal(t, "second", payload.Items[1].UniqueID)
}

func TestCollectorLoneGroupMemberFlushesAsSingle(t *testing.T) {
	recorder := &flushRecorder{}
	collector := newBatchCollector(20*time.Millisecond, recorder.flush)

	collector.Add(context.Background(), documentEvent(7, "only", "group-1"))

	assert.Eventually(t, func() bool {
		return recorder.count() == 1
	}, time.Second, 5*time.Millisecond)

	_, ok := recorder.flushes[0].payload.(business.SinglePayload)
	assert.True(t, ok, "a one-member group is a plain single upload")
}

func TestCollectorKeepsSendersApart(t *testing.T) {
	recorder := &flushRecorder{}
	collector := newBatchCollector(20*time.Millisecond, recorder.flush)

	ctx := context.Background()
	collector.Add(ctx, documentEvent(7, "a", "group-1"))
	collector.Add(ctx, documentEvent(8, "b", "group-1"))

	assert.Eventually(t, func() bool {
		return recorder.count() == 2
	}, time.Second, 5*time.Millisecond)
}
