package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/recall/pkg/model"
)

func TestRetentionFullAtZeroElapsed(t *testing.T) {
	now := time.Now()
	for c := 1; c <= 5; c++ {
		gt.Equal(t, model.Retention(c, now, now), 100.0)
	}
}

func TestRetentionHalfLife(t *testing.T) {
	now := time.Now()
	learnedAt := now.Add(-36 * time.Hour)

	score := model.Retention(3, learnedAt, now)
	if score < 49.99 || score > 50.01 {
		t.Errorf("expected ~50.0 after one half-life, got %f", score)
	}
}

func TestRetentionMonotonicDecay(t *testing.T) {
	now := time.Now()
	for c := 1; c <= 5; c++ {
		prev := 100.0
		for h := 1; h <= 240; h += 7 {
			score := model.Retention(c, now.Add(-time.Duration(h)*time.Hour), now)
			gt.True(t, score <= prev)
			gt.True(t, score >= 0)
			prev = score
		}
	}
}

func TestRetentionComplexityOrdering(t *testing.T) {
	// Harder material decays faster at any fixed elapsed time.
	now := time.Now()
	learnedAt := now.Add(-24 * time.Hour)

	prev := -1.0
	for c := 5; c >= 1; c-- {
		score := model.Retention(c, learnedAt, now)
		gt.True(t, score > prev)
		prev = score
	}
}

func TestRetentionInvalidComplexityDefaults(t *testing.T) {
	now := time.Now()
	learnedAt := now.Add(-36 * time.Hour)

	for _, c := range []int{0, -1, 6, 100} {
		gt.Equal(t, model.Retention(c, learnedAt, now), model.Retention(3, learnedAt, now))
	}
}

func TestRetentionClampsFutureLearnedAt(t *testing.T) {
	now := time.Now()
	gt.Equal(t, model.Retention(3, now.Add(time.Hour), now), 100.0)
}

func TestHalfLifeLookup(t *testing.T) {
	gt.Equal(t, model.HalfLife(1), 72*time.Hour)
	gt.Equal(t, model.HalfLife(2), 48*time.Hour)
	gt.Equal(t, model.HalfLife(3), 36*time.Hour)
	gt.Equal(t, model.HalfLife(4), 24*time.Hour)
	gt.Equal(t, model.HalfLife(5), 18*time.Hour)
	gt.Equal(t, model.HalfLife(0), 36*time.Hour)
	gt.Equal(t, model.HalfLife(9), 36*time.Hour)
}
