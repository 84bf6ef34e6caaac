package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

// replayGuard wraps an optional IdempotencyStore. Store failures degrade to
// "no idempotency" rather than failing the request.
type replayGuard struct {
	store ports.IdempotencyStore
	log   zerolog.Logger
}

// claim returns the ID of a resource already created under key, or "" when
// the caller should go ahead and create one. ok is false when there is
// nothing to bind afterwards.
func (g replayGuard) claim(ctx context.Context, scope, key string) (existingID string, ok bool, err error) {
	if g.store == nil || key == "" {
		return "", false, nil
	}

	id, claimed, err := g.store.Claim(ctx, scope, key)
	if err != nil {
		g.log.Warn().Err(err).Str("scope", scope).Msg("idempotency claim failed, processing anyway")
		return "", false, nil
	}
	if claimed {
		return "", true, nil
	}
	if id == "" {
		return "", false, domain.ErrRequestInFlight
	}
	return id, false, nil
}

// stale logs a key whose bound resource no longer resolves. The caller then
// creates afresh and binds the key to the new resource.
func (g replayGuard) stale(scope, key, resourceID string) {
	g.log.Warn().Str("scope", scope).Str("idempotency_key", key).Str("resource_id", resourceID).
		Msg("idempotency key bound to a missing resource, creating again")
}

// bind and release run even when ctx has been cancelled.
func (g replayGuard) bind(ctx context.Context, scope, key, resourceID string) {
	if err := g.store.Bind(context.WithoutCancel(ctx), scope, key, resourceID); err != nil {
		g.log.Warn().Err(err).Str("scope", scope).Msg("failed to bind idempotency key")
	}
}

func (g replayGuard) release(ctx context.Context, scope, key string) {
	if err := g.store.Release(context.WithoutCancel(ctx), scope, key); err != nil {
		g.log.Warn().Err(err).Str("scope", scope).Msg("failed to release idempotency key")
	}
}
