package business

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/openrelay/service-filerelay/config"
	"github.com/openrelay/service-filerelay/service/events"
	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/storage"
	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

// UploadItem is one document as submitted by an admin.
type UploadItem struct {
	Ref       types.RemoteRef
	UniqueID  string
	Name      string
	Size      int64
	Mimetype  string
	IsImage   bool
	FromChat  types.ChatID
	MessageID int
}

// UploadPayload is the tagged submission variant: a lone document or a
// media-group batch. Each variant has its own dispatch path.
type UploadPayload interface {
	isUploadPayload()
}

type SinglePayload struct {
	Item UploadItem
}

func (SinglePayload) isUploadPayload() {}

type BatchPayload struct {
	Items []UploadItem
}

func (BatchPayload) isUploadPayload() {}

// ItemOutcome reports one item of a submission. Err is nil on success.
type ItemOutcome struct {
	Key  types.FileKey
	Name string
	Link string
	Err  error
}

// UploadSummary aggregates per-item outcomes. A batch never aborts on
// one item's failure; callers render the itemized list.
type UploadSummary struct {
	Outcomes []ItemOutcome
}

func (s *UploadSummary) Succeeded() int {
	n := 0
	for _, outcome := range s.Outcomes {
		if outcome.Err == nil {
			n++
		}
	}
	return n
}

func (s *UploadSummary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}

// Uploader archives admin submissions: dump-channel copy, blob mirror,
// registry insert, thumbnail queueing for images.
type Uploader struct {
	service   *frame.Service
	cfg       *config.FileRelayConfig
	admission *Admission
	registry  repository.FileRepository
	messenger platform.Messenger
	mirror    storage.Provider
}

func NewUploader(
	service *frame.Service,
	cfg *config.FileRelayConfig,
	admission *Admission,
	registry repository.FileRepository,
	messenger platform.Messenger,
	mirror storage.Provider,
) *Uploader {
	return &Uploader{
		service:   service,
		cfg:       cfg,
		admission: admission,
		registry:  registry,
		messenger: messenger,
		mirror:    mirror,
	}
}

// Upload admits the actor, then dispatches per payload variant.
func (u *Uploader) Upload(ctx context.Context, actor types.UserID, payload UploadPayload) (*UploadSummary, error) {
	if !u.admission.IsAdmin(actor) {
		return nil, ErrPermissionDenied
	}

	switch p := payload.(type) {
	case SinglePayload:
		return u.uploadSingle(ctx, actor, p)
	case BatchPayload:
		return u.uploadBatch(ctx, actor, p)
	}

	return nil, fmt.Errorf("unhandled upload payload %T", payload)
}

func (u *Uploader) uploadSingle(ctx context.Context, actor types.UserID, payload SinglePayload) (*UploadSummary, error) {
	return &UploadSummary{
		Outcomes: []ItemOutcome{u.uploadItem(ctx, actor, payload.Item)},
	}, nil
}

func (u *Uploader) uploadBatch(ctx context.Context, actor types.UserID, payload BatchPayload) (*UploadSummary, error) {
	outcomes := make([]ItemOutcome, 0, len(payload.Items))
	for _, item := range payload.Items {
		outcomes = append(outcomes, u.uploadItem(ctx, actor, item))
	}
	return &UploadSummary{Outcomes: outcomes}, nil
}

// uploadItem runs the full archive pipeline for one document. Failures
// are reported in the outcome; nothing partial reaches the registry.
func (u *Uploader) uploadItem(ctx context.Context, actor types.UserID, item UploadItem) ItemOutcome {
	outcome := ItemOutcome{Name: item.Name}

	key := deriveFileKey(item)
	if !IsValidFileKey(key) {
		outcome.Err = fmt.Errorf("could not derive a file key for %q", item.Name)
		return outcome
	}
	outcome.Key = key

	logger := util.Log(ctx).With(
		"file_key", string(key),
		"upload_name", item.Name,
		"size_bytes", item.Size,
	)
	logger.Debug("archiving upload")

	err := u.archiveToChannel(ctx, item)
	if err != nil {
		logger.WithError(err).Error("could not copy upload to dump channel")
		outcome.Err = fmt.Errorf("%w: archival copy failed", ErrStorageUnavailable)
		return outcome
	}

	mirrorPath, err := u.mirrorBytes(ctx, key, item)
	if err != nil {
		logger.WithError(err).Error("could not mirror upload into blob storage")
		outcome.Err = fmt.Errorf("%w: mirror write failed", ErrStorageUnavailable)
		return outcome
	}

	record := &models.FileRecord{
		FileKey:      string(key),
		RemoteRef:    string(item.Ref),
		Name:         item.Name,
		Ext:          strings.TrimPrefix(path.Ext(item.Name), "."),
		Size:         item.Size,
		OriginTs:     time.Now().Unix(),
		Mimetype:     item.Mimetype,
		UploaderID:   int64(actor),
		MirrorBucket: u.mirror.PrivateBucket(),
		MirrorPath:   mirrorPath,
		Provider:     u.mirror.Name(),
	}

	err = u.registry.Register(ctx, record)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			outcome.Err = repository.ErrDuplicateKey
			return outcome
		}
		logger.WithError(err).Error("could not register file record")
		outcome.Err = fmt.Errorf("%w: registry write failed", ErrStorageUnavailable)
		return outcome
	}

	logger.Info("file registered")

	if item.IsImage {
		err = u.queueThumbnailGeneration(ctx, key)
		if err != nil {
			logger.WithError(err).Warn("could not queue thumbnail generation")
		}
	}

	u.audit(ctx, actor, key)

	outcome.Link = ResolveDownloadLink(u.cfg.FileAccessServerUrl, key)
	return outcome
}

func (u *Uploader) archiveToChannel(ctx context.Context, item UploadItem) error {
	copyCtx, cancel := context.WithTimeout(ctx, u.cfg.PlatformRequestTimeout())
	defer cancel()

	return u.messenger.CopyToChannel(copyCtx, u.cfg.DumpChannelID, item.FromChat, item.MessageID)
}

func (u *Uploader) mirrorBytes(ctx context.Context, key types.FileKey, item UploadItem) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, u.cfg.PlatformRequestTimeout())
	defer cancel()

	contents, err := u.messenger.FetchFile(fetchCtx, item.Ref)
	if err != nil {
		return "", err
	}
	defer util.CloseAndLogOnError(ctx, contents)

	objectPath := MirrorObjectPath(key)
	err = storage.Upload(ctx, u.mirror, u.mirror.PrivateBucket(), objectPath, contents)
	if err != nil {
		return "", err
	}

	return objectPath, nil
}

func (u *Uploader) queueThumbnailGeneration(ctx context.Context, key types.FileKey) error {
	return u.service.QueueManager().Publish(ctx, u.cfg.QueueThumbnailsGenerateName, map[string]string{
		"file_key": string(key),
	})
}

func (u *Uploader) audit(ctx context.Context, actor types.UserID, key types.FileKey) {
	err := u.service.Emit(ctx, events.AccessAuditEventName, &models.AccessAudit{
		FileKey: string(key),
		ActorID: int64(actor),
		Action:  "upload",
		Outcome: "registered",
	})
	if err != nil {
		util.Log(ctx).WithError(err).Warn("could not emit access audit event")
	}
}

// deriveFileKey builds the stable key from the platform's unique file
// identifier. The identifier is collision-resistant and survives
// re-sends, unlike the transient transfer handle.
func deriveFileKey(item UploadItem) types.FileKey {
	return types.FileKey(item.UniqueID)
}
