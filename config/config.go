package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame/config"
)

// DefaultPlatformRequestTimeout bounds every call to the messaging
// platform. A timed out membership check classifies as Unknown.
const DefaultPlatformRequestTimeout = 10 * time.Second

type FileRelayConfig struct {
	config.ConfigurationDefault

	BotToken string `envDefault:"" env:"BOT_TOKEN"`

	// AdminIDs is the immutable set of user ids allowed to upload,
	// broadcast and read stats. Loaded once at startup.
	AdminIDs []int64 `envDefault:"" env:"ADMIN_IDS" envSeparator:","`

	// DumpChannelID is the private channel every upload is mirrored
	// into for durable re-delivery.
	DumpChannelID int64 `envDefault:"0" env:"DUMP_CHANNEL_ID"`

	// ForceChannels lists the channels a user must join before any
	// file is released. ForceChannelTitles and ForceChannelLinks are
	// parallel lists; missing entries fall back to the channel id and
	// a t.me link derived from its @username.
	ForceChannels      []string `envDefault:"" env:"FORCE_CHANNELS" envSeparator:","`
	ForceChannelTitles []string `envDefault:"" env:"FORCE_CHANNEL_TITLES" envSeparator:","`
	ForceChannelLinks  []string `envDefault:"" env:"FORCE_CHANNEL_LINKS" envSeparator:","`

	FileAccessServerUrl string `envDefault:"" env:"FILE_ACCESS_SERVER_URL"`

	PlatformRequestTimeoutSeconds int `envDefault:"10" env:"PLATFORM_REQUEST_TIMEOUT_SECONDS"`

	StorageProvider string `envDefault:"LOCAL" env:"STORAGE_PROVIDER"`

	ProviderGcsPrivateBucket  string `envDefault:"" env:"GCS_PRIVATE_BUCKET"`
	ProviderGcsPublicBucket   string `envDefault:"" env:"GCS_PUBLIC_BUCKET"`
	ProviderS3PrivateBucket   string `envDefault:"" env:"S3_PRIVATE_BUCKET"`
	ProviderS3PublicBucket    string `envDefault:"" env:"S3_PUBLIC_BUCKET"`
	ProviderS3Endpoint        string `envDefault:"" env:"S3_ENDPOINT"`
	ProviderS3Region          string `envDefault:"" env:"S3_REGION"`
	ProviderS3AccessKeySecret string `envDefault:"" env:"S3_ACCESS_KEY_SECRET"`
	ProviderS3SessionToken    string `envDefault:"" env:"S3_SESSION_TOKEN"`
	ProviderS3AccessKeyId     string `envDefault:"" env:"S3_ACCESS_KEY_ID"`

	QueueBroadcastURL  string `envDefault:"mem://broadcast_fanout" env:"QUEUE_BROADCAST_URL"`
	QueueBroadcastName string `envDefault:"broadcast_fanout" env:"QUEUE_BROADCAST_NAME"`

	QueueThumbnailsGenerateURL  string `envDefault:"mem://thumbnails_generate" env:"QUEUE_THUMBNAILS_GENERATE_URL"`
	QueueThumbnailsGenerateName string `envDefault:"thumbnails_generate" env:"QUEUE_THUMBNAILS_GENERATE_NAME"`
}

// PlatformRequestTimeout returns the bounded timeout for platform calls.
func (c *FileRelayConfig) PlatformRequestTimeout() time.Duration {
	if c.PlatformRequestTimeoutSeconds <= 0 {
		return DefaultPlatformRequestTimeout
	}
	return time.Duration(c.PlatformRequestTimeoutSeconds) * time.Second
}

// RequiredChannels assembles the configured channel requirements in
// their configured order. Verification evaluates them in this order.
func (c *FileRelayConfig) RequiredChannels() []types.ChannelRequirement {
	requirements := make([]types.ChannelRequirement, 0, len(c.ForceChannels))
	for i, channel := range c.ForceChannels {
		channel = strings.TrimSpace(channel)
		if channel == "" {
			continue
		}

		requirement := types.ChannelRequirement{
			Channel: types.ChannelID(channel),
			Title:   channel,
		}
		if i < len(c.ForceChannelTitles) && c.ForceChannelTitles[i] != "" {
			requirement.Title = c.ForceChannelTitles[i]
		}
		if i < len(c.ForceChannelLinks) && c.ForceChannelLinks[i] != "" {
			requirement.JoinURL = c.ForceChannelLinks[i]
		} else if strings.HasPrefix(channel, "@") {
			requirement.JoinURL = fmt.Sprintf("https://t.me/%s", strings.TrimPrefix(channel, "@"))
		}

		requirements = append(requirements, requirement)
	}
	return requirements
}
