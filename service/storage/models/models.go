package models

import (
	"time"

	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame/data"
)

// User mirrors a platform identity that has interacted with the bot.
// Upserted on every interaction, never deleted.
type User struct {
	data.BaseModel

	TelegramID int64  `gorm:"uniqueIndex"`
	FirstName  string `gorm:"type:TEXT"`

	// Memberships caches the last-known verdict per required channel.
	// Purely informational; every retrieval re-checks the oracle.
	Memberships data.JSONMap
}

// Refresh updates the mutable profile fields on an interaction.
func (u *User) Refresh(firstName string) {
	u.FirstName = firstName
}

// CacheVerdict records the last observed membership status for a channel.
func (u *User) CacheVerdict(channel types.ChannelID, status types.MembershipStatus) {
	if u.Memberships == nil {
		u.Memberships = data.JSONMap{}
	}
	u.Memberships[string(channel)] = string(status)
}

// FileRecord holds archived-document metadata. Created exactly once per
// successful upload and immutable thereafter.
type FileRecord struct {
	data.BaseModel

	FileKey   string `gorm:"type:TEXT;uniqueIndex"`
	RemoteRef string `gorm:"type:TEXT"`

	Name string `gorm:"type:TEXT"`
	Ext  string `gorm:"type:TEXT"`

	Size     int64
	OriginTs int64
	Mimetype string `gorm:"type:TEXT"`

	UploaderID int64

	MirrorBucket string `gorm:"type:TEXT"`
	MirrorPath   string `gorm:"type:TEXT"`
	Provider     string `gorm:"type:TEXT"`

	Properties data.JSONMap
}

func (fr *FileRecord) ToApi() *types.FileRecord {
	return &types.FileRecord{
		Key:        types.FileKey(fr.FileKey),
		RemoteRef:  types.RemoteRef(fr.RemoteRef),
		Name:       types.Filename(fr.Name),
		SizeBytes:  fr.Size,
		Mimetype:   fr.Mimetype,
		UploaderID: types.UserID(fr.UploaderID),
		UploadedAt: time.Unix(fr.OriginTs, 0).UTC(),
		MirrorPath: fr.MirrorPath,
	}
}

func (fr *FileRecord) Fill(rec *types.FileRecord) {
	fr.FileKey = string(rec.Key)
	fr.RemoteRef = string(rec.RemoteRef)
	fr.Name = string(rec.Name)
	fr.Size = rec.SizeBytes
	fr.Mimetype = rec.Mimetype
	fr.UploaderID = int64(rec.UploaderID)
	fr.OriginTs = rec.UploadedAt.Unix()
	fr.MirrorPath = rec.MirrorPath
}

// AccessAudit model responsible for holding events on a file
type AccessAudit struct {
	data.BaseModel

	FileKey string `gorm:"type:TEXT"`
	ActorID int64
	Action  string `gorm:"type:TEXT"`
	Outcome string `gorm:"type:TEXT"`
}
