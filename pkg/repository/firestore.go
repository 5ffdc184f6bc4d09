package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m-mizutani/recall/pkg/model"
)

const (
	collectionName = "learning"
	documentName   = "history"
)

// Firestore implements Repository on Cloud Firestore. The whole ordered
// topic list lives in a single document, mirroring the one logical key the
// store contract assumes; at 100 short records it stays far below the
// document size limit.
type Firestore struct {
	client *firestore.Client
}

// topicsDoc is the persisted document shape.
type topicsDoc struct {
	Topics    []*model.Topic `firestore:"topics"`
	UpdatedAt time.Time      `firestore:"updatedAt"`
}

// NewFirestore creates a Firestore-backed repository.
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

func (r *Firestore) GetTopics(ctx context.Context) ([]*model.Topic, error) {
	snapshot, err := r.client.Collection(collectionName).Doc(documentName).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return []*model.Topic{}, nil
		}
		return nil, goerr.Wrap(err, "failed to load topic collection")
	}

	var doc topicsDoc
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode topic collection")
	}

	now := time.Now()
	topics := doc.Topics
	if topics == nil {
		topics = []*model.Topic{}
	}
	for _, t := range topics {
		t.Normalize(now)
	}

	return topics, nil
}

func (r *Firestore) PutTopics(ctx context.Context, topics []*model.Topic) error {
	doc := topicsDoc{
		Topics:    topics,
		UpdatedAt: time.Now(),
	}
	if _, err := r.client.Collection(collectionName).Doc(documentName).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save topic collection", goerr.V("count", len(topics)))
	}
	return nil
}

// Close releases the underlying client.
func (r *Firestore) Close() error {
	return r.client.Close()
}
