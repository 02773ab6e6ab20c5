package storage

import (
	"context"
	"io"

	"github.com/pitabwire/util"
	"gocloud.dev/blob"
)

// Provider is the archival mirror behind the dump channel: every
// uploaded file's raw bytes are written here so the HTTP file route can
// serve them without going back through the messaging platform.
type Provider interface {
	Name() string
	PrivateBucket() string
	PublicBucket() string
	GetBucket(isPublic bool) string

	Setup(ctx context.Context) error
	Init(ctx context.Context, bucketName string) (*blob.Bucket, error)
}

// Upload writes an object into the named bucket of the provider.
func Upload(ctx context.Context, provider Provider, bucketName string, objectPath string, contents io.Reader) error {

	bucket, err := provider.Init(ctx, bucketName)
	if err != nil {
		return err
	}
	defer util.CloseAndLogOnError(ctx, bucket)

	writeCtx, cancelWrite := context.WithCancel(ctx)
	defer cancelWrite()

	w, err := bucket.NewWriter(writeCtx, objectPath, nil)
	if err != nil {
		return err
	}
	defer util.CloseAndLogOnError(ctx, w)

	_, err = w.ReadFrom(contents)
	if err != nil {
		cancelWrite()
		return err
	}

	return nil
}

// Download opens an object for reading. The returned cleanup must be
// called once the reader is drained.
func Download(ctx context.Context, provider Provider, bucketName string, objectPath string) (io.Reader, func(), error) {

	bucket, err := provider.Init(ctx, bucketName)
	if err != nil {
		return nil, nil, err
	}

	r, err := bucket.NewReader(ctx, objectPath, nil)
	if err != nil {
		util.CloseAndLogOnError(ctx, bucket)
		return nil, nil, err
	}

	return r, func() {
		util.CloseAndLogOnError(ctx, r) // Ignore errors on cleanup
		util.CloseAndLogOnError(ctx, bucket)
	}, nil
}
