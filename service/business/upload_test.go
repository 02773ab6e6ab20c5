package business_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/platform/mocks"
	"github.com/openrelay/service-filerelay/service/storage"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func uploadItem(uniqueID, name string) business.UploadItem {
	return business.UploadItem{
		Ref:       types.RemoteRef("ref-" + uniqueID),
		UniqueID:  uniqueID,
		Name:      name,
		Size:      1024,
		Mimetype:  "application/pdf",
		FromChat:  555,
		MessageID: 42,
	}
}

func TestUploadRejectsNonAdmin(t *testing.T) {
	ctx, svc := newTestService(t, testConfig())

	ctrl := gomock.NewController(t)
	messenger := mocks.NewMockMessenger(ctrl)

	registry := newFakeFileRepository()
	uploader := business.NewUploader(svc, testConfig(), business.NewAdmission([]int64{100}),
		registry, messenger, newLocalProvider(t))

	_, err := uploader.Upload(ctx, 7, business.SinglePayload{Item: uploadItem("AgADBAAD", "doc.pdf")})
	assert.ErrorIs(t, err, business.ErrPermissionDenied)

	// Denial leaves no trace: no copy, no mirror write, no record.
	count, err := registry.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUploadSingle(t *testing.T) {
	cfg := testConfig()
	ctx, svc := newTestService(t, cfg)

	ctrl := gomock.NewController(t)
	messenger := mocks.NewMockMessenger(ctrl)
	messenger.EXPECT().
		CopyToChannel(gomock.Any(), cfg.DumpChannelID, types.ChatID(555), 42).
		Return(nil)
	messenger.EXPECT().
		FetchFile(gomock.Any(), types.RemoteRef("ref-AgADBAAD")).
		Return(io.NopCloser(strings.NewReader("file bytes")), nil)

	registry := newFakeFileRepository()
	provider := newLocalProvider(t)

	uploader := business.NewUploader(svc, cfg, business.NewAdmission([]int64{100}),
		registry, messenger, provider)

	summary, err := uploader.Upload(ctx, 100, business.SinglePayload{Item: uploadItem("AgADBAAD", "doc.pdf")})
	require.NoError(t, err)

	require.Len(t, summary.Outcomes, 1)
	outcome := summary.Outcomes[0]
	require.NoError(t, outcome.Err)
	assert.Equal(t, types.FileKey("AgADBAAD"), outcome.Key)
	assert.Equal(t, "https://files.example.com/file/v1/AgADBAAD", outcome.Link)
	assert.Equal(t, 1, summary.Succeeded())
	assert.Equal(t, 0, summary.Failed())

	record, err := registry.GetByKey(ctx, "AgADBAAD")
	require.NoError(t, err)
	assert.Equal(t, "doc.pdf", record.Name)
	assert.Equal(t, "pdf", record.Ext)
	assert.Equal(t, int64(100), record.UploaderID)

	// The raw bytes landed in the mirror bucket.
	reader, cleanup, err := storage.Download(ctx, provider, record.MirrorBucket, record.MirrorPath)
	require.NoError(t, err)
	defer cleanup()
	mirrored, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "file bytes", string(mirrored))
}

func TestUploadDuplicateKey(t *testing.T) {
	cfg := testConfig()
	ctx, svc := newTestService(t, cfg)

	ctrl := gomock.NewController(t)
	messenger := mocks.NewMockMessenger(ctrl)
	messenger.EXPECT().
		CopyToChannel(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)
	messenger.EXPECT().
		FetchFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, types.RemoteRef) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("file bytes")), nil
		}).
		Times(2)

	uploader := business.NewUploader(svc, cfg, business.NewAdmission([]int64{100}),
		newFakeFileRepository(), messenger, newLocalProvider(t))

	summary, err := uploader.Upload(ctx, 100, business.SinglePayload{Item: uploadItem("AgADBAAD", "doc.pdf")})
	require.NoError(t, err)
	require.NoError(t, summary.Outcomes[0].Err)

	// Same platform file again: the registry is immutable.
	summary, err = uploader.Upload(ctx, 100, business.SinglePayload{Item: uploadItem("AgADBAAD", "doc.pdf")})
	require.NoError(t, err)
	assert.ErrorIs(t, summary.Outcomes[0].Err, repository.ErrDuplicateKey)
}

func TestUploadBatchPartialFailure(t *testing.T) {
	cfg := testConfig()
	ctx, svc := newTestService(t, cfg)

	ctrl := gomock.NewController(t)
	messenger := mocks.NewMockMessenger(ctrl)
	messenger.EXPECT().
		CopyToChannel(gomock.Any(), gomock.Any(), types.ChatID(555), 42).
		Return(nil).
		Times(2)
	messenger.EXPECT().
		FetchFile(gomock.Any(), types.RemoteRef("ref-good")).
		Return(io.NopCloser(strings.NewReader("good bytes")), nil)
	messenger.EXPECT().
		FetchFile(gomock.Any(), types.RemoteRef("ref-bad")).
		Return(nil, errors.New("file gone"))

	uploader := business.NewUploader(svc, cfg, business.NewAdmission([]int64{100}),
		newFakeFileRepository(), messenger, newLocalProvider(t))

	summary, err := uploader.Upload(ctx, 100, business.BatchPayload{Items: []business.UploadItem{
		uploadItem("good", "good.pdf"),
		uploadItem("bad", "bad.pdf"),
	}})
	require.NoError(t, err, "a failed item must not abort the batch")

	require.Len(t, summary.Outcomes, 2)
	assert.NoError(t, summary.Outcomes[0].Err)
	assert.ErrorIs(t, summary.Outcomes[1].Err, business.ErrStorageUnavailable)
	assert.Equal(t, 1, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())
}

func TestUploadArchivalCopyFailure(t *testing.T) {
	cfg := testConfig()
	ctx, svc := newTestService(t, cfg)

	ctrl := gomock.NewController(t)
	messenger := mocks.NewMockMessenger(ctrl)
	messenger.EXPECT().
		CopyToChannel(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("channel unavailable"))

	registry := newFakeFileRepository()
	uploader := business.NewUploader(svc, cfg, business.NewAdmission([]int64{100}),
		registry, messenger, newLocalProvider(t))

	summary, err := uploader.Upload(ctx, 100, business.SinglePayload{Item: uploadItem("AgADBAAD", "doc.pdf")})
	require.NoError(t, err)

	assert.ErrorIs(t, summary.Outcomes[0].Err, business.ErrStorageUnavailable)

	// Nothing may be registered when the archival copy failed.
	count, err := registry.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
