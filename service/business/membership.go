package business

import (
	"context"
	"time"

	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/util"
)

// Verifier classifies a user's membership of every configured required
// channel through the platform's membership oracle.
type Verifier struct {
	messenger    platform.Messenger
	requirements []types.ChannelRequirement
	timeout      time.Duration
}

func NewVerifier(messenger platform.Messenger, requirements []types.ChannelRequirement, timeout time.Duration) *Verifier {
	return &Verifier{
		messenger:    messenger,
		requirements: requirements,
		timeout:      timeout,
	}
}

// Requirements returns the configured channel list in evaluation order.
func (v *Verifier) Requirements() []types.ChannelRequirement {
	return v.requirements
}

// MembershipStatus resolves one (channel, user) pair with a bounded
// timeout. Any oracle failure classifies as Unknown: ambiguous
// membership never grants access.
func (v *Verifier) MembershipStatus(ctx context.Context, channel types.ChannelID, user types.UserID) types.MembershipStatus {
	checkCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	status, err := v.messenger.MemberStatus(checkCtx, channel, user)
	if err != nil {
		util.Log(ctx).WithError(err).With(
			"channel", string(channel),
			"user_id", int64(user),
		).Warn("membership check failed, treating as unknown")
		return types.StatusUnknown
	}

	return status
}

// VerifyAll evaluates every requirement in configured order and reports
// a verdict for each, so the user always sees the full list of channels
// left to join. The overall grant is the AND over all verdicts.
func (v *Verifier) VerifyAll(ctx context.Context, user types.UserID) []types.ChannelVerdict {
	verdicts := make([]types.ChannelVerdict, 0, len(v.requirements))
	for _, requirement := range v.requirements {
		verdicts = append(verdicts, types.ChannelVerdict{
			Requirement: requirement,
			Status:      v.MembershipStatus(ctx, requirement.Channel, user),
		})
	}
	return verdicts
}

// AllSatisfied reports the AND over a verdict list. An empty list means
// no subscription gate is configured and access is open.
func AllSatisfied(verdicts []types.ChannelVerdict) bool {
	for _, verdict := range verdicts {
		if !verdict.Satisfied() {
			return false
		}
	}
	return true
}
