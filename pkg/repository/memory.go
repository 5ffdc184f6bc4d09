package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/recall/pkg/model"
)

// Memory implements Repository in process memory. Used by tests and by
// local runs that do not need durability.
type Memory struct {
	mu     sync.RWMutex
	topics []*model.Topic
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

func (r *Memory) GetTopics(ctx context.Context) ([]*model.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]*model.Topic, len(r.topics))
	for i, t := range r.topics {
		cp := *t
		cp.Concepts = append([]string{}, t.Concepts...)
		topics[i] = &cp
	}
	return topics, nil
}

func (r *Memory) PutTopics(ctx context.Context, topics []*model.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.topics = make([]*model.Topic, len(topics))
	for i, t := range topics {
		cp := *t
		cp.Concepts = append([]string{}, t.Concepts...)
		r.topics[i] = &cp
	}
	return nil
}
