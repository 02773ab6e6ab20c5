package models_test

import (
	"testing"

	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecordToApi(t *testing.T) {
	record := &models.FileRecord{
		FileKey:    "AgADBAAD",
		RemoteRef:  "remote-1",
		Name:       "doc.pdf",
		Size:       2048,
		OriginTs:   1700000000,
		Mimetype:   "application/pdf",
		UploaderID: 100,
		MirrorPath: "files/AgADBAAD",
	}

	api := record.ToApi()
	require.NotNil(t, api)
	assert.Equal(t, types.FileKey("AgADBAAD"), api.Key)
	assert.Equal(t, types.RemoteRef("remote-1"), api.RemoteRef)
	assert.Equal(t, types.Filename("doc.pdf"), api.Name)
	assert.Equal(t, int64(2048), api.SizeBytes)
	assert.Equal(t, "application/pdf", api.Mimetype)
	assert.Equal(t, types.UserID(100), api.UploaderID)
	assert.Equal(t, "files/AgADBAAD", api.MirrorPath)
}

func TestUserCacheVerdict(t *testing.T) {
	user := &models.User{TelegramID: 7}

	user.CacheVerdict("@updates", types.StatusLeft)
	user.CacheVerdict("@updates", types.StatusMember)
	user.CacheVerdict("@news", types.StatusUnknown)

	assert.Equal(t, string(types.StatusMember), user.Memberships["@updates"])
	assert.Equal(t, string(types.StatusUnknown), user.Memberships["@news"])
}

func TestUserRefresh(t *testing.T) {
	user := &models.User{TelegramID: 7, FirstName: "Ada"}
	user.Refresh("Ada L.")
	assert.Equal(t, "Ada L.", user.FirstName)
}
