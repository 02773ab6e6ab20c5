package business_test

import (
	"context"
	"sync"
	"testing"

	"github.com/openrelay/service-filerelay/config"
	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/storage/provider/local"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestService builds a service with in-memory queues and no
// datastore; repository access in these tests goes through fakes.
func newTestService(t *testing.T, cfg *config.FileRelayConfig) (context.Context, *frame.Service) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")

	cfg.LogLevel = "debug"
	cfg.RunServiceSecurely = false
	cfg.ServerPort = ""

	ctx, svc := frame.NewServiceWithContext(t.Context(), "business tests",
		frame.WithConfig(cfg),
		frame.WithNoopDriver())

	svc.Init(ctx,
		frame.WithRegisterPublisher(cfg.QueueBroadcastName, cfg.QueueBroadcastURL),
		frame.WithRegisterPublisher(cfg.QueueThumbnailsGenerateName, cfg.QueueThumbnailsGenerateURL),
	)

	err := svc.Run(ctx, "")
	require.NoError(t, err)

	t.Cleanup(func() {
		svc.Stop(ctx)
	})

	return ctx, svc
}

func testConfig() *config.FileRelayConfig {
	return &config.FileRelayConfig{
		AdminIDs:                      []int64{100},
		DumpChannelID:                 -100999,
		FileAccessServerUrl:           "https://files.example.com",
		PlatformRequestTimeoutSeconds: 1,
		QueueBroadcastURL:             "mem://broadcast_fanout_test",
		QueueBroadcastName:            "broadcast_fanout_test",
		QueueThumbnailsGenerateURL:    "mem://thumbnails_generate_test",
		QueueThumbnailsGenerateName:   "thumbnails_generate_test",
	}
}

type fakeFileRepository struct {
	mu      sync.Mutex
	records map[types.FileKey]*models.FileRecord
	getErr  error
}

func newFakeFileRepository() *fakeFileRepository {
	return &fakeFileRepository{records: make(map[types.FileKey]*models.FileRecord)}
}

func (f *fakeFileRepository) GetByKey(_ context.Context, key types.FileKey) (*models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeFileRepository) Register(_ context.Context, record *models.FileRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := types.FileKey(record.FileKey)
	if _, ok := f.records[key]; ok {
		return repository.ErrDuplicateKey
	}
	f.records[key] = record
	return nil
}

func (f *fakeFileRepository) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.records)), nil
}

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepository) GetByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[telegramID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) Save(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.TelegramID] = user
	return nil
}

func (f *fakeUserRepository) All(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepository) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

// newLocalProvider mirrors into throwaway directory buckets.
func newLocalProvider(t *testing.T) *local.ProviderLocal {
	provider := local.NewProvider("LOCAL", t.TempDir()+"/private", t.TempDir()+"/public")
	require.NoError(t, provider.Setup(context.Background()))
	return provider
}
