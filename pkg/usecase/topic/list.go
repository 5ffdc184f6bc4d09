package topic

import (
	"context"
	"math"

	"github.com/m-mizutani/recall/pkg/model"
)

// Stats summarizes the dashboard header numbers.
type Stats struct {
	Total       int     `json:"total"`
	NeedsReview int     `json:"needsReview"` // topics with score below 50
	AvgScore    float64 `json:"avgMemory"`   // rounded to whole percent
}

// List returns all topics with scores attached, optionally narrowed to one
// memory band, along with stats over the full (unfiltered) collection.
func (u *UseCase) List(ctx context.Context, band model.Band) ([]*model.ScoredTopic, *Stats, error) {
	topics, err := u.store.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{Total: len(topics)}
	var sum float64
	for _, t := range topics {
		sum += t.MemoryScore
		if t.MemoryScore < 50 {
			stats.NeedsReview++
		}
	}
	if len(topics) > 0 {
		stats.AvgScore = math.Round(sum / float64(len(topics)))
	}

	if band == "" {
		return topics, stats, nil
	}

	filtered := make([]*model.ScoredTopic, 0, len(topics))
	for _, t := range topics {
		if t.Band() == band {
			filtered = append(filtered, t)
		}
	}
	return filtered, stats, nil
}
