package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/approvals-api/internal/bridge"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/repository"
)

// mutation describes one optimistic change to a stored entity.
type mutation[T any] struct {
	store *repository.EntityStore[T]
	id    string
	op    bridge.Operation
	actor models.Actor

	// apply computes the local value from the current one. Returning an
	// error aborts before anything is sent.
	apply func(current T) (T, error)
	// commit sends the change and returns the value to keep. current is
	// the value held before apply ran.
	commit func(ctx context.Context, current, next T) (T, error)
	// remove drops the entity instead of storing the committed value.
	remove bool
}

// runMutation claims the entity, applies the change locally, commits it and
// restores the snapshot if anything fails. Every attempted commit ends up in
// the action history.
func runMutation[T any](ctx context.Context, h HistoryService, m mutation[T]) (T, error) {
	var zero T

	snapshot, err := m.store.Begin(m.id)
	if err != nil {
		return zero, err
	}

	next, err := m.apply(snapshot)
	if err != nil {
		m.store.Rollback(m.id, snapshot)
		return zero, err
	}

	if m.remove {
		m.store.Hide(m.id)
	} else {
		m.store.Apply(m.id, next)
	}

	confirmed, err := m.commit(ctx, snapshot, next)
	h.Record(ctx, m.actor, m.op, m.id, err)
	if err != nil {
		m.store.Rollback(m.id, snapshot)
		slog.Info("bridge mutation failed",
			"resource", m.op.Resource,
			"action", m.op.Action,
			"entity_id", m.id,
			"error", err)
		return zero, fmt.Errorf("%s %s: %w", m.op, m.id, err)
	}

	if m.remove {
		m.store.Delete(m.id)
		return confirmed, nil
	}
	m.store.Commit(m.id, confirmed)
	return confirmed, nil
}
