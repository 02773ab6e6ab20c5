package platform

import (
	"context"
	"io"

	"github.com/openrelay/service-filerelay/service/types"
)

// Button is one inline action attached to an outbound message. Exactly
// one of URL or Data is set: URL buttons open a join link, Data buttons
// fire a callback event carrying their payload back to the bot.
type Button struct {
	Text string
	URL  string
	Data string
}

// Messenger is the narrow surface of the messaging platform the core
// depends on: outbound sends, the membership oracle and file transfer.
// Implementations must bound every call with a timeout; the transport
// used for inbound events (polling or webhook) is irrelevant here.
type Messenger interface {
	SendText(ctx context.Context, chat types.ChatID, text string) error
	SendTextWithButtons(ctx context.Context, chat types.ChatID, text string, rows [][]Button) error

	// SendDocument re-delivers an archived document by its durable
	// remote reference.
	SendDocument(ctx context.Context, chat types.ChatID, ref types.RemoteRef, caption string) error

	// CopyToChannel mirrors a message into the archival dump channel.
	CopyToChannel(ctx context.Context, channel int64, fromChat types.ChatID, messageID int) error

	// MemberStatus asks the membership oracle how the user relates to
	// the channel. Errors are the caller's to classify; the verifier
	// treats them as StatusUnknown (fail-closed).
	MemberStatus(ctx context.Context, channel types.ChannelID, user types.UserID) (types.MembershipStatus, error)

	// FetchFile streams the raw bytes of a platform file so they can
	// be mirrored into blob storage.
	FetchFile(ctx context.Context, ref types.RemoteRef) (io.ReadCloser, error)

	// AcknowledgeCallback stops the client-side spinner on an inline
	// button press.
	AcknowledgeCallback(ctx context.Context, callbackID string) error
}

// EventKind tags an inbound platform event.
type EventKind int

const (
	EventCommand EventKind = iota
	EventDocument
	EventCallback
)

// DocumentInfo describes one uploaded file as delivered by the platform.
type DocumentInfo struct {
	Ref      types.RemoteRef
	UniqueID string
	Name     string
	Size     int64
	Mimetype string
	IsImage  bool
}

// Event is a platform-neutral inbound unit of work. The transport
// adapter converts raw updates into these; handlers never see the
// platform's own update types.
type Event struct {
	Kind EventKind

	User      types.UserID
	FirstName string
	Chat      types.ChatID
	MessageID int

	Command string
	Args    string

	Document *DocumentInfo

	// MediaGroupID groups documents submitted together as a batch.
	// Empty for standalone documents.
	MediaGroupID string

	CallbackID   string
	CallbackData string
}
