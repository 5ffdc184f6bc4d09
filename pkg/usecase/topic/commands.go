package topic

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

// Delete removes a topic. Unknown IDs are a no-op, per the store contract.
func (u *UseCase) Delete(ctx context.Context, id model.TopicID) error {
	if err := u.store.Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete topic", goerr.V("id", id))
	}
	logging.From(ctx).Info("topic deleted", "id", id)
	return nil
}

// Restore resets a topic's memory anchor to now, the explicit "I remember"
// action. Unknown IDs are a no-op.
func (u *UseCase) Restore(ctx context.Context, id model.TopicID) error {
	if err := u.store.Touch(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to restore topic", goerr.V("id", id))
	}
	logging.From(ctx).Info("memory strength restored", "id", id)
	return nil
}

// Clear wipes the whole collection.
func (u *UseCase) Clear(ctx context.Context) error {
	if err := u.store.Clear(ctx); err != nil {
		return goerr.Wrap(err, "failed to clear topics")
	}
	logging.From(ctx).Info("all learning data cleared")
	return nil
}
