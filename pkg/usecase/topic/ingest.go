package topic

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

// Ingest runs the full pipeline on one observed session: classify,
// analyze, then merge into an existing topic or create a new one.
// Collaborator failures never surface here; the only errors returned are
// storage I/O failures from the topic store. A skipped (non-educational)
// session is success.
//
// Fire and forget from the capture side: once started, the pipeline runs
// to completion even if the originating page is gone.
func (u *UseCase) Ingest(ctx context.Context, session *model.Session) error {
	logger := logging.From(ctx)

	session.Clip()
	if session.Timestamp.IsZero() {
		session.Timestamp = u.now()
	}
	logger.Debug("processing session", "title", session.Title, "timeSpent", session.TimeSpent)

	if !u.classify(ctx, session) {
		logger.Info("skipped: not educational content", "title", session.Title)
		return nil
	}

	analysis := u.analyze(ctx, session)
	logger.Info("subject identified", "mainTopic", analysis.MainTopic, "domain", analysis.Domain)

	u.archiveContent(ctx, session)

	existing, err := u.store.FindBySimilarTopic(ctx, analysis.MainTopic)
	if err != nil {
		return goerr.Wrap(err, "failed to look up existing topic", goerr.V("mainTopic", analysis.MainTopic))
	}

	if existing != nil {
		if err := u.store.Merge(ctx, existing.ID, session, analysis); err != nil {
			return goerr.Wrap(err, "failed to merge session into topic", goerr.V("id", existing.ID))
		}
		logger.Info("updated existing topic", "mainTopic", existing.MainTopic, "id", existing.ID)
		return nil
	}

	newTopic := &model.Topic{
		ID:         model.NewTopicID(),
		MainTopic:  analysis.MainTopic,
		Title:      session.Title,
		URL:        session.URL,
		TimeSpent:  session.TimeSpent,
		LearnedAt:  session.Timestamp,
		LastReview: session.Timestamp,
		ReviewCnt:  0,
		Concepts:   analysis.Concepts,
		Summary:    analysis.Summary,
		Complexity: analysis.Complexity,
		Domain:     analysis.Domain,
	}

	if err := u.store.Create(ctx, newTopic); err != nil {
		return goerr.Wrap(err, "failed to create topic", goerr.V("mainTopic", newTopic.MainTopic))
	}

	logger.Info("new topic saved", "mainTopic", newTopic.MainTopic, "id", newTopic.ID)
	return nil
}

// archiveContent saves the raw session snippet when an archive sink is
// configured. Archive failures are absorbed: the pipeline must not depend
// on the optional sink.
func (u *UseCase) archiveContent(ctx context.Context, session *model.Session) {
	if u.archive == nil {
		return
	}

	key := fmt.Sprintf("sessions/%s.txt", session.Timestamp.UTC().Format("20060102T150405.000000000"))
	w, err := u.archive.Put(ctx, key)
	if err != nil {
		logging.From(ctx).Warn("failed to open session archive", "key", key, "error", err)
		return
	}
	defer func() {
		if err := w.Close(); err != nil {
			logging.From(ctx).Warn("failed to close session archive", "key", key, "error", err)
		}
	}()

	header := session.Title + "\n" + session.URL + "\n\n"
	if _, err := io.Copy(w, strings.NewReader(header+session.Content)); err != nil {
		logging.From(ctx).Warn("failed to write session archive", "key", key, "error", err)
	}
}
