// Package store owns the durable topic collection. Every mutation is a
// read-modify-write of the whole ordered list, serialized through one
// mutex so concurrent callers never clobber each other's snapshot.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/repository"
)

// Store provides the topic collection operations. Mutations on an unknown
// topic ID are benign no-ops per the command contract: callers treat them
// as "nothing to update", not as errors.
type Store struct {
	repo    repository.Repository
	matcher Matcher
	now     func() time.Time

	mu sync.Mutex
}

// Option is a functional option for Store
type Option func(*Store)

// WithMatcher overrides the topic label matching strategy.
func WithMatcher(m Matcher) Option {
	return func(s *Store) {
		s.matcher = m
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store over the given repository. The default matching
// strategy is SubstringMatcher.
func New(repo repository.Repository, opts ...Option) *Store {
	s := &Store{
		repo:    repo,
		matcher: SubstringMatcher{},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FindBySimilarTopic returns the first stored topic whose label matches
// the given one, in stored order, or nil when none matches.
func (s *Store) FindBySimilarTopic(ctx context.Context, label string) (*model.Topic, error) {
	topics, err := s.repo.GetTopics(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range topics {
		if s.matcher.Match(label, t.MainTopic) {
			return t, nil
		}
	}
	return nil, nil
}

// Create prepends a new topic and evicts the oldest entries beyond the
// collection capacity.
func (s *Store) Create(ctx context.Context, topic *model.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, err := s.repo.GetTopics(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load topics for create")
	}

	topics = append([]*model.Topic{topic}, topics...)
	if len(topics) > model.MaxTopics {
		topics = topics[:model.MaxTopics]
	}

	return s.repo.PutTopics(ctx, topics)
}

// Merge folds a new session and its analysis into an existing topic. The
// topic's subject, complexity, domain and learnedAt anchor are deliberately
// left as they were at creation.
func (s *Store) Merge(ctx context.Context, id model.TopicID, session *model.Session, analysis *model.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, err := s.repo.GetTopics(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load topics for merge")
	}

	found := false
	for _, t := range topics {
		if t.ID != id {
			continue
		}
		t.TimeSpent += session.TimeSpent
		t.LastReview = session.Timestamp
		t.ReviewCnt++
		t.Concepts = model.MergeConcepts(t.Concepts, analysis.Concepts)
		t.Summary = analysis.Summary
		found = true
		break
	}

	if !found {
		return nil
	}

	return s.repo.PutTopics(ctx, topics)
}

// Touch resets the memory anchor of a topic to now, the "I remember"
// action. Everything else is left untouched.
func (s *Store) Touch(ctx context.Context, id model.TopicID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, err := s.repo.GetTopics(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load topics for touch")
	}

	found := false
	now := s.now()
	for _, t := range topics {
		if t.ID != id {
			continue
		}
		t.LearnedAt = now
		t.LastReview = now
		found = true
		break
	}

	if !found {
		return nil
	}

	return s.repo.PutTopics(ctx, topics)
}

// Delete removes a topic from the collection.
func (s *Store) Delete(ctx context.Context, id model.TopicID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, err := s.repo.GetTopics(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load topics for delete")
	}

	filtered := topics[:0]
	for _, t := range topics {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}

	if len(filtered) == len(topics) {
		return nil
	}

	return s.repo.PutTopics(ctx, filtered)
}

// Clear wipes the whole collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.PutTopics(ctx, []*model.Topic{})
}

// ListAll returns every topic with its memory score computed for the
// current moment. Read-only; safe to call concurrently.
func (s *Store) ListAll(ctx context.Context) ([]*model.ScoredTopic, error) {
	topics, err := s.repo.GetTopics(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	scored := make([]*model.ScoredTopic, len(topics))
	for i, t := range topics {
		scored[i] = &model.ScoredTopic{
			Topic:       t,
			MemoryScore: model.Retention(t.Complexity, t.LearnedAt, now),
		}
	}

	return scored, nil
}
