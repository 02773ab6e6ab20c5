package config_test

import (
	"testing"
	"time"

	"github.com/openrelay/service-filerelay/config"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/stretchr/testify/assert"
)

func TestPlatformRequestTimeout(t *testing.T) {
	testCases := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{name: "configured value", seconds: 3, want: 3 * time.Second},
		{name: "zero falls back to default", seconds: 0, want: config.DefaultPlatformRequestTimeout},
		{name: "negative falls back to default", seconds: -5, want: config.DefaultPlatformRequestTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.FileRelayConfig{PlatformRequestTimeoutSeconds: tc.seconds}
			assert.Equal(t, tc.want, cfg.PlatformRequestTimeout())
		})
	}
}

func TestRequiredChannels(t *testing.T) {
	testCases := []struct {
		name     string
		channels []string
		titles   []string
		links    []string
		want     []types.ChannelRequirement
	}{
		{
			name:     "username channel derives join link",
			channels: []string{"@updates"},
			want: []types.ChannelRequirement{
				{Channel: "@updates", Title: "@updates", JoinURL: "https://t.me/updates"},
			},
		},
		{
			name:     "explicit title and link win",
			channels: []string{"@updates"},
			titles:   []string{"Updates Channel"},
			links:    []string{"https://t.me/+abc123"},
			want: []types.ChannelRequirement{
				{Channel: "@updates", Title: "Updates Channel", JoinURL: "https://t.me/+abc123"},
			},
		},
		{
			name:     "numeric id has no derivable link",
			channels: []string{"-1001234567890"},
			want: []types.ChannelRequirement{
				{Channel: "-1001234567890", Title: "-1001234567890"},
			},
		},
		{
			name:     "blank entries are skipped",
			channels: []string{"", " ", "@kept"},
			want: []types.ChannelRequirement{
				{Channel: "@kept", Title: "@kept", JoinURL: "https://t.me/kept"},
			},
		},
		{
			name:     "order is preserved",
			channels: []string{"@first", "@second"},
			want: []types.ChannelRequirement{
				{Channel: "@first", Title: "@first", JoinURL: "https://t.me/first"},
				{Channel: "@second", Title: "@second", JoinURL: "https://t.me/second"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.FileRelayConfig{
				ForceChannels:      tc.channels,
				ForceChannelTitles: tc.titles,
				ForceChannelLinks:  tc.links,
			}
			assert.Equal(t, tc.want, cfg.RequiredChannels())
		})
	}
}
