package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openrelay/service-filerelay/service/events"
	"github.com/openrelay/service-filerelay/service/storage/models"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

// ErrRequestInFlight signals a duplicate retrieval for a (user, key)
// pair whose first attempt is still being processed. Callers drop the
// duplicate silently; the original request will answer.
var ErrRequestInFlight = errors.New("retrieval already in flight")

// RetrievalOutcome is the terminal state of one retrieval request.
type RetrievalOutcome int

const (
	Granted RetrievalOutcome = iota
	DeniedNotSubscribed
	DeniedNotFound
)

// RetrievalRequest is one user's attempt to obtain one file. The key
// always travels inside the request payload, including on retry; it is
// never recovered from conversation state.
type RetrievalRequest struct {
	User types.UserID
	Key  types.FileKey
}

// RetrievalResult carries the outcome plus whatever the responder needs
// to phrase it: the record on a grant, the full verdict list on a
// subscription denial.
type RetrievalResult struct {
	Outcome  RetrievalOutcome
	Record   *types.FileRecord
	Verdicts []types.ChannelVerdict
}

// Retriever coordinates verification and registry lookup for retrieval
// requests: Requested -> Verifying -> Granted | DeniedNotSubscribed |
// DeniedNotFound. Denials are terminal; a retry is a brand new request.
type Retriever struct {
	service  *frame.Service
	registry repository.FileRepository
	verifier *Verifier
	identity *Identity
	inflight *keyLock
}

func NewRetriever(service *frame.Service, registry repository.FileRepository, verifier *Verifier, identity *Identity) *Retriever {
	return &Retriever{
		service:  service,
		registry: registry,
		verifier: verifier,
		identity: identity,
		inflight: newKeyLock(30 * time.Second),
	}
}

func (r *Retriever) Retrieve(ctx context.Context, req RetrievalRequest) (*RetrievalResult, error) {
	if !r.inflight.TryAcquire(req.User, req.Key) {
		return nil, ErrRequestInFlight
	}
	defer r.inflight.Release(req.User, req.Key)

	logger := util.Log(ctx).With(
		"user_id", int64(req.User),
		"file_key", string(req.Key),
	)

	if !IsValidFileKey(req.Key) {
		logger.Debug("rejecting malformed file key")
		return &RetrievalResult{Outcome: DeniedNotFound}, nil
	}

	verdicts := r.verifier.VerifyAll(ctx, req.User)

	if cacheErr := r.identity.CacheVerdicts(ctx, req.User, verdicts); cacheErr != nil {
		logger.WithError(cacheErr).Warn("could not cache membership verdicts")
	}

	if !AllSatisfied(verdicts) {
		r.audit(ctx, req, "retrieve", "denied_not_subscribed")
		return &RetrievalResult{Outcome: DeniedNotSubscribed, Verdicts: verdicts}, nil
	}

	record, err := r.registry.GetByKey(ctx, req.Key)
	if err != nil {
		if frame.ErrorIsNoRows(err) {
			r.audit(ctx, req, "retrieve", "denied_not_found")
			return &RetrievalResult{Outcome: DeniedNotFound}, nil
		}
		logger.WithError(err).Error("registry lookup failed")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	r.audit(ctx, req, "retrieve", "granted")
	return &RetrievalResult{Outcome: Granted, Record: record.ToApi()}, nil
}

func (r *Retriever) audit(ctx context.Context, req RetrievalRequest, action, outcome string) {
	err := r.service.Emit(ctx, events.AccessAuditEventName, &models.AccessAudit{
		FileKey: string(req.Key),
		ActorID: int64(req.User),
		Action:  action,
		Outcome: outcome,
	})
	if err != nil {
		util.Log(ctx).WithError(err).Warn("could not emit access audit event")
	}
}
