package types

import "time"

// UserID is the platform-assigned numeric identity of a user.
type UserID int64

// ChatID identifies a conversation the bot can send messages into.
// For direct chats it equals the UserID, for channels it is the
// channel's own id.
type ChatID int64

// FileKey is the stable identifier used to look up a FileRecord. It is
// derived from the platform's unique file identifier at upload time and
// is distinct from the transient file handle used for transfers.
type FileKey string

// RemoteRef is the opaque durable reference to the archived copy of a
// file, usable for later re-delivery through the platform.
type RemoteRef string

// ChannelID identifies a channel on the messaging platform. Public
// channels are addressed by @username, private ones by numeric id.
type ChannelID string

// Filename is the display name a file was uploaded under.
type Filename string

// MembershipStatus classifies a user's relationship to a channel as
// reported by the platform's membership API.
type MembershipStatus string

const (
	StatusMember        MembershipStatus = "member"
	StatusAdministrator MembershipStatus = "administrator"
	StatusLeft          MembershipStatus = "left"
	StatusKicked        MembershipStatus = "kicked"

	// StatusUnknown covers oracle errors: the bot cannot see the
	// channel, the id is malformed, or the call timed out. Unknown
	// never satisfies a requirement.
	StatusUnknown MembershipStatus = "unknown"
)

// IsSatisfied reports whether the status grants access to gated files.
func (s MembershipStatus) IsSatisfied() bool {
	return s == StatusMember || s == StatusAdministrator
}

// ChannelRequirement is one channel a user must have joined before any
// file is released. Static configuration, never persisted per user.
type ChannelRequirement struct {
	Channel ChannelID
	Title   string
	JoinURL string
}

// ChannelVerdict is the outcome of checking one requirement for one user.
type ChannelVerdict struct {
	Requirement ChannelRequirement
	Status      MembershipStatus
}

// Satisfied reports whether this single verdict grants access.
func (v ChannelVerdict) Satisfied() bool {
	return v.Status.IsSatisfied()
}

// FileRecord is the archived-document metadata held by the file
// registry. Immutable once registered.
type FileRecord struct {
	Key        FileKey
	RemoteRef  RemoteRef
	Name       Filename
	SizeBytes  int64
	Mimetype   string
	UploaderID UserID
	UploadedAt time.Time
	MirrorPath string
}
