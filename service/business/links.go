package business

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/openrelay/service-filerelay/service/types"
)

// downloadLinkVersion is baked into every user-visible link so the
// storage-reference shape can change without breaking issued links.
const downloadLinkVersion = "v1"

// ResolveDownloadLink derives the durable user-visible link for a
// registered file. Format: <base>/file/v1/<fileKey>.
func ResolveDownloadLink(baseURL string, key types.FileKey) string {
	return fmt.Sprintf("%s/file/%s/%s",
		strings.TrimRight(baseURL, "/"), downloadLinkVersion, url.PathEscape(string(key)))
}

// MirrorObjectPath is where a file's raw bytes live inside the mirror
// bucket.
func MirrorObjectPath(key types.FileKey) string {
	return path.Join("files", string(key))
}

// ThumbnailObjectPath locates a generated preview for an image file.
func ThumbnailObjectPath(key types.FileKey, width, height int) string {
	return path.Join("thumbnails", fmt.Sprintf("%s_%dx%d", string(key), width, height))
}

// IsValidFileKey reports whether the key consists only of the derived
// key charset A-Za-z0-9_=- and is non-empty. Retry payloads are checked
// before use.
func IsValidFileKey(key types.FileKey) bool {
	if key == "" {
		return false
	}
	for _, r := range string(key) {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' && r != '=' && r != '-' {
			return false
		}
	}
	return true
}
