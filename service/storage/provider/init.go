package provider

import (
	"context"

	"github.com/openrelay/service-filerelay/config"
	"github.com/openrelay/service-filerelay/service/storage"
	"github.com/openrelay/service-filerelay/service/storage/provider/gcs"
	"github.com/openrelay/service-filerelay/service/storage/provider/local"
	"github.com/openrelay/service-filerelay/service/storage/provider/s3"
	"github.com/pitabwire/frame"
)

func GetStorageProvider(ctx context.Context, cfg *config.FileRelayConfig) (storage.Provider, error) {
	var provider storage.Provider
	switch cfg.StorageProvider {
	case "GCS":
		provider = gcs.NewProvider("GCS", cfg.ProviderGcsPrivateBucket, cfg.ProviderGcsPublicBucket)

	case "S3":

		provider = s3.NewProvider("S3", cfg.ProviderS3PrivateBucket, cfg.ProviderS3PublicBucket,
			cfg.ProviderS3Endpoint, cfg.ProviderS3Region, cfg.ProviderS3AccessKeySecret,
			cfg.ProviderS3SessionToken, cfg.ProviderS3AccessKeyId)

	default:

		provider = local.NewProvider("LOCAL", frame.GetEnv("LOCAL_PRIVATE_DIRECTORY", "/tmp/private"), frame.GetEnv("LOCAL_PUBLIC_DIRECTORY", "/tmp/public"))

	}

	err := provider.Setup(ctx)
	return provider, err

}
