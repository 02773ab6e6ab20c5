package business

import (
	"context"

	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
)

// Identity maintains the durable user directory. Every interaction
// upserts the user so broadcast always reaches the full audience.
type Identity struct {
	users repository.UserRepository
}

func NewIdentity(users repository.UserRepository) *Identity {
	return &Identity{users: users}
}

// Touch registers the user on first contact and refreshes the display
// name on every subsequent one.
func (i *Identity) Touch(ctx context.Context, user types.UserID, firstName string) (*models.User, error) {
	existing, err := i.users.GetByTelegramID(ctx, int64(user))
	if err != nil && !frame.ErrorIsNoRows(err) {
		return nil, err
	}

	if existing == nil {
		existing = &models.User{TelegramID: int64(user)}
	}
	existing.Refresh(firstName)

	err = i.users.Save(ctx, existing)
	if err != nil {
		return nil, err
	}

	return existing, nil
}

// CacheVerdicts stores the last observed membership statuses on the
// user's profile. Informational only; retrieval always re-checks.
func (i *Identity) CacheVerdicts(ctx context.Context, user types.UserID, verdicts []types.ChannelVerdict) error {
	profile, err := i.users.GetByTelegramID(ctx, int64(user))
	if err != nil {
		return err
	}

	for _, verdict := range verdicts {
		profile.CacheVerdict(verdict.Requirement.Channel, verdict.Status)
	}

	return i.users.Save(ctx, profile)
}
