// Package topic implements the command surface over the topic store: the
// ingestion pipeline and the list/delete/restore operations used by the
// dashboard and CLI.
package topic

import (
	"time"

	"github.com/m-mizutani/recall/pkg/adapter"
	"github.com/m-mizutani/recall/pkg/store"
)

// llmTimeout bounds each classifier/analyzer call. A timeout is treated
// like a malformed response: the pipeline proceeds on local fallbacks.
const llmTimeout = 30 * time.Second

// UseCase provides topic-related operations
type UseCase struct {
	store   *store.Store
	gemini  adapter.Gemini  // nil: run on deterministic fallbacks only
	archive adapter.Storage // nil: session content is not archived
	now     func() time.Time
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithGemini attaches the language model collaborator.
func WithGemini(g adapter.Gemini) Option {
	return func(uc *UseCase) {
		uc.gemini = g
	}
}

// WithArchive attaches a storage sink for raw session content.
func WithArchive(s adapter.Storage) Option {
	return func(uc *UseCase) {
		uc.archive = s
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new topic UseCase instance
func New(s *store.Store, opts ...Option) *UseCase {
	uc := &UseCase{
		store: s,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
