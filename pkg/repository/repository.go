package repository

import (
	"context"

	"github.com/m-mizutani/recall/pkg/model"
)

// Repository persists the single ordered topic collection. Ordering is
// owned by the caller: GetTopics returns the list exactly as last saved,
// newest-first, and PutTopics replaces it wholesale. Serializing
// read-modify-write cycles is the store's job, not the repository's.
type Repository interface {
	// GetTopics loads the full topic collection. An absent collection
	// yields an empty slice, not an error.
	GetTopics(ctx context.Context) ([]*model.Topic, error)

	// PutTopics replaces the full topic collection.
	PutTopics(ctx context.Context, topics []*model.Topic) error
}
