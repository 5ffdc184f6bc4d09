package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/repository"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	repo, err := repository.NewFirestore(context.Background(), projectID, databaseID)
	gt.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func TestFirestoreRoundTrip(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Millisecond)
	in := []*model.Topic{
		{
			ID:         model.NewTopicID(),
			MainTopic:  "Calculus",
			Title:      "Intro to Calculus",
			URL:        "https://example.com/calc",
			TimeSpent:  40,
			LearnedAt:  now,
			LastReview: now,
			Concepts:   []string{"limits", "derivatives"},
			Summary:    "Limits and rates of change",
			Complexity: 4,
			Domain:     "mathematics",
		},
	}

	gt.NoError(t, repo.PutTopics(ctx, in))

	out, err := repo.GetTopics(ctx)
	gt.NoError(t, err)
	gt.A(t, out).Length(1)
	gt.Equal(t, out[0].ID, in[0].ID)
	gt.Equal(t, out[0].MainTopic, "Calculus")
	gt.V(t, out[0].Concepts).Equal([]string{"limits", "derivatives"})
}

func TestFirestoreEmptyCollection(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	gt.NoError(t, repo.PutTopics(ctx, []*model.Topic{}))

	out, err := repo.GetTopics(ctx)
	gt.NoError(t, err)
	gt.NotNil(t, out)
	gt.A(t, out).Length(0)
}
