package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ironguard/inventory-server/internal/core/domain"
	"github.com/ironguard/inventory-server/internal/pkg/metrics"
)

// IdempotencyStore abstracts the idempotency key store (Redis).
//
// Reserve claims key atomically. When the key is already held it returns
// reserved=false and the stored resource id, or "" while the request that
// holds the key has not finished yet.
type IdempotencyStore interface {
	Reserve(ctx context.Context, resource, subject, key string) (existing string, reserved bool, err error)
	Complete(ctx context.Context, resource, subject, key, id string) error
	Release(ctx context.Context, resource, subject, key string) error
}

// idempotency applies an optional IdempotencyStore to create operations.
// Store failures never fail the request.
type idempotency struct {
	store    IdempotencyStore
	resource string
	log      zerolog.Logger
}

// reservation is the outcome of begin. A create that follows it must call
// finish on success or abort on failure.
type reservation struct {
	idem   idempotency
	caller domain.Identity
	key    string
	// previous is the id created earlier under key, if any.
	previous string
	// owned reports whether this request holds the key.
	owned bool
}

// begin reserves key for the caller. It returns
// domain.ErrIdempotencyInProgress while another request holds the key.
func (i idempotency) begin(ctx context.Context, id domain.Identity, key string) (reservation, error) {
	r := reservation{idem: i, caller: id, key: key}
	if i.store == nil || key == "" {
		return r, nil
	}
	existing, reserved, err := i.store.Reserve(ctx, i.resource, id.Subject, key)
	if err != nil {
		i.log.Warn().Err(err).Str("resource", i.resource).Msg("idempotency reserve failed, processing anyway")
		return r, nil
	}
	if reserved {
		r.owned = true
		return r, nil
	}
	if existing == "" {
		return r, domain.ErrIdempotencyInProgress
	}
	metrics.IdempotentReplaysTotal.WithLabelValues(i.resource).Inc()
	r.previous = existing
	return r, nil
}

// stale records that the resource stored under the key no longer exists,
// so the request creates a new one and takes the key over.
func (r *reservation) stale() {
	r.previous = ""
	r.owned = true
}

func (r reservation) finish(ctx context.Context, createdID string) {
	if !r.owned {
		return
	}
	if err := r.idem.store.Complete(ctx, r.idem.resource, r.caller.Subject, r.key, createdID); err != nil {
		r.idem.log.Warn().Err(err).Str("resource", r.idem.resource).Msg("failed to store idempotency key")
	}
}

func (r reservation) abort(ctx context.Context) {
	if !r.owned {
		return
	}
	if err := r.idem.store.Release(ctx, r.idem.resource, r.caller.Subject, r.key); err != nil {
		r.idem.log.Warn().Err(err).Str("resource", r.idem.resource).Msg("failed to release idempotency key")
	}
}
