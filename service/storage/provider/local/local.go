package local

import (
	"context"
	"fmt"
	"os"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
)

type ProviderLocal struct {
	name          string
	privateBucket string
	publicBucket  string
}

func (provider *ProviderLocal) Name() string {
	return provider.name
}

func (provider *ProviderLocal) PublicBucket() string {
	return provider.publicBucket
}

func (provider *ProviderLocal) PrivateBucket() string {
	return provider.privateBucket
}

func (provider *ProviderLocal) GetBucket(isPublic bool) string {

	if isPublic {
		return provider.PublicBucket()
	}
	return provider.PrivateBucket()
}

func (provider *ProviderLocal) Setup(ctx context.Context) error {

	err := os.MkdirAll(provider.privateBucket, 0755)
	if err != nil {
		return err
	}

	err = os.MkdirAll(provider.publicBucket, 0755)
	if err != nil {
		return err
	}

	return nil
}

func (provider *ProviderLocal) Init(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	return blob.OpenBucket(ctx, fmt.Sprintf("file://%s", bucketName))
}

func NewProvider(name, privateBucket, publicBucket string) *ProviderLocal {
	return &ProviderLocal{
		name:          name,
		privateBucket: privateBucket,
		publicBucket:  publicBucket,
	}
}
