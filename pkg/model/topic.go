package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxConcepts caps the concept tags kept per topic across merges.
	MaxConcepts = 8

	// MaxTopics caps the stored collection; the oldest entries are
	// evicted when a new topic pushes the list over the limit.
	MaxTopics = 100
)

type TopicID string

// NewTopicID generates a new unique TopicID
func NewTopicID() TopicID {
	return TopicID(uuid.New().String())
}

// Topic is a consolidated educational subject aggregating one or more
// observed learning sessions.
type Topic struct {
	ID         TopicID   `firestore:"id" json:"id"`
	MainTopic  string    `firestore:"mainTopic" json:"mainTopic"`
	Title      string    `firestore:"title" json:"title"`
	URL        string    `firestore:"url" json:"url"`
	TimeSpent  int       `firestore:"timeSpent" json:"timeSpent"` // cumulative seconds
	LearnedAt  time.Time `firestore:"learnedAt" json:"learnedAt"`
	LastReview time.Time `firestore:"lastReviewed" json:"lastReviewed"`
	ReviewCnt  int       `firestore:"reviewCount" json:"reviewCount"`
	Concepts   []string  `firestore:"concepts" json:"concepts"`
	Summary    string    `firestore:"summary" json:"summary"`
	Complexity int       `firestore:"complexity" json:"complexity"` // 1-5, fixed at creation
	Domain     string    `firestore:"domain" json:"domain"`
}

// Normalize coerces malformed persisted fields to safe defaults so that a
// single bad record never aborts a whole collection read.
func (t *Topic) Normalize(now time.Time) {
	if t.ID == "" {
		t.ID = NewTopicID()
	}
	if t.MainTopic == "" {
		t.MainTopic = "General Topic"
	}
	if t.TimeSpent < 0 {
		t.TimeSpent = 0
	}
	if t.LearnedAt.IsZero() {
		t.LearnedAt = now
	}
	if t.LastReview.IsZero() {
		t.LastReview = t.LearnedAt
	}
	if t.ReviewCnt < 0 {
		t.ReviewCnt = 0
	}
	if t.Concepts == nil {
		t.Concepts = []string{}
	}
	if len(t.Concepts) > MaxConcepts {
		t.Concepts = t.Concepts[:MaxConcepts]
	}
	if t.Complexity < 1 || t.Complexity > 5 {
		t.Complexity = DefaultComplexity
	}
	if t.Domain == "" {
		t.Domain = "general"
	}
}

// MergeConcepts appends incoming concept tags, dropping exact duplicates
// and preserving first-seen order, capped at MaxConcepts.
func MergeConcepts(existing, incoming []string) []string {
	merged := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, c := range append(append([]string{}, existing...), incoming...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		merged = append(merged, c)
		if len(merged) == MaxConcepts {
			break
		}
	}
	return merged
}

// ScoredTopic is a Topic enriched with its derived memory score. The score
// is computed at read time and never persisted.
type ScoredTopic struct {
	*Topic
	MemoryScore float64 `json:"memoryScore"`
}

// Band classifies a score into the dashboard's memory bands.
type Band string

const (
	BandStrong    Band = "strong"    // score >= 80
	BandReview    Band = "review"    // 50 <= score < 80
	BandForgotten Band = "forgotten" // score < 50
)

// Band returns the memory band of the topic's current score.
func (s *ScoredTopic) Band() Band {
	switch {
	case s.MemoryScore >= 80:
		return BandStrong
	case s.MemoryScore >= 50:
		return BandReview
	default:
		return BandForgotten
	}
}

// Session is one observed page-visit event with duration and extracted text.
type Session struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	TimeSpent int       `json:"timeSpent"` // seconds
	Timestamp time.Time `json:"timestamp"`
}

const (
	// MinSessionSeconds is the capture-side engagement floor; shorter
	// visits are never handed to the ingestion pipeline.
	MinSessionSeconds = 30

	// MinContentLength is the capture-side extracted-text floor.
	MinContentLength = 100

	// MaxContentLength clips extracted text at intake.
	MaxContentLength = 3000
)

// Trackable reports whether the session passes the capture-side pre-filter.
func (s *Session) Trackable() bool {
	return s.TimeSpent >= MinSessionSeconds && len(s.Content) > MinContentLength
}

// Clip truncates overlong extracted content and trims the title.
func (s *Session) Clip() {
	s.Title = strings.TrimSpace(s.Title)
	if len(s.Content) > MaxContentLength {
		s.Content = s.Content[:MaxContentLength]
	}
}
