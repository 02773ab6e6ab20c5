package thumbnailer

import (
	"bytes"
	"context"
	"fmt"
	"image"

	// Imported for gif codec
	_ "image/gif"
	"image/jpeg"

	// Imported for png codec
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/storage"
	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/util"
	// Imported for webp codec
	_ "golang.org/x/image/webp"
)

// Size is one preview resolution to pre-generate.
type Size struct {
	Width  int
	Height int
}

// DefaultSizes are generated for every archived image.
var DefaultSizes = []Size{
	{Width: 96, Height: 96},
	{Width: 320, Height: 320},
}

// GenerateThumbnails renders the configured preview sizes for an
// archived image and stores them next to the mirror object.
func GenerateThumbnails(
	ctx context.Context,
	sizes []Size,
	record *models.FileRecord,
	provider storage.Provider,
	logger *util.LogEntry,
) error {

	img, err := readMirrorImage(ctx, record, provider)
	if err != nil {
		return err
	}

	for _, size := range sizes {
		err = createThumbnail(ctx, img, size, record, provider, logger)
		if err != nil {
			return err
		}
	}
	return nil
}

func readMirrorImage(ctx context.Context, record *models.FileRecord, provider storage.Provider) (image.Image, error) {
	reader, cleanup, err := storage.Download(ctx, provider, record.MirrorBucket, record.MirrorPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read mirror object: %w", err)
	}
	defer cleanup()

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

func createThumbnail(
	ctx context.Context,
	img image.Image,
	size Size,
	record *models.FileRecord,
	provider storage.Provider,
	logger *util.LogEntry,
) error {

	thumbnail := resize.Thumbnail(uint(size.Width), uint(size.Height), img, resize.Lanczos3)

	var encoded bytes.Buffer
	err := jpeg.Encode(&encoded, thumbnail, &jpeg.Options{Quality: 85})
	if err != nil {
		return err
	}

	objectPath := business.ThumbnailObjectPath(types.FileKey(record.FileKey), size.Width, size.Height)
	err = storage.Upload(ctx, provider, record.MirrorBucket, objectPath, &encoded)
	if err != nil {
		return err
	}

	logger.With(
		"file_key", record.FileKey,
		"thumbnail", objectPath,
	).Debug("thumbnail stored")

	return nil
}
