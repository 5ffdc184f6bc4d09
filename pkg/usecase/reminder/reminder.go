// Package reminder scans the topic store on a schedule and notifies the
// user about topics sliding out of memory.
package reminder

import (
	"context"
	"fmt"
	"math"

	"github.com/m-mizutani/recall/pkg/adapter"
	"github.com/m-mizutani/recall/pkg/store"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

// The reminder band: a topic is worth a nudge while its score is below 50
// but has not yet collapsed under 30. Both bounds are exclusive.
const (
	bandLow  = 30.0
	bandHigh = 50.0
)

// Scanner checks topic retention and emits reminder notifications.
type Scanner struct {
	store    *store.Store
	notifier adapter.Notifier
}

// New creates a Scanner.
func New(s *store.Store, n adapter.Notifier) *Scanner {
	return &Scanner{store: s, notifier: n}
}

// Scan lists all topics and notifies for every one inside the reminder
// band. Topics lingering in the band are notified again on each scan; the
// scanner keeps no notification history.
func (s *Scanner) Scan(ctx context.Context) error {
	topics, err := s.store.ListAll(ctx)
	if err != nil {
		return err
	}

	notified := 0
	for _, t := range topics {
		if t.MemoryScore <= bandLow || t.MemoryScore >= bandHigh {
			continue
		}
		message := fmt.Sprintf("Don't forget: %q - Memory at %d%%", t.MainTopic, int(math.Round(t.MemoryScore)))
		s.notifier.Notify(ctx, "Time to review", message)
		notified++
	}

	logging.From(ctx).Debug("reminder scan finished", "topics", len(topics), "notified", notified)
	return nil
}
