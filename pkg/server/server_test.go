package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/repository"
	"github.com/m-mizutani/recall/pkg/server"
	"github.com/m-mizutani/recall/pkg/store"
	"github.com/m-mizutani/recall/pkg/usecase/topic"
)

type env struct {
	srv   *server.Server
	store *store.Store
}

func setup(t *testing.T) *env {
	t.Helper()
	s := store.New(repository.NewMemory())
	return &env{
		srv:   server.New(topic.New(s)),
		store: s,
	}
}

func (e *env) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func (e *env) seed(t *testing.T, id, mainTopic string) {
	t.Helper()
	now := time.Now()
	err := e.store.Create(context.Background(), &model.Topic{
		ID:         model.TopicID(id),
		MainTopic:  mainTopic,
		LearnedAt:  now,
		LastReview: now,
		Concepts:   []string{"c"},
		Complexity: 3,
		Domain:     "general",
	})
	gt.NoError(t, err)
}

func TestHealth(t *testing.T) {
	e := setup(t)
	rec := e.do(http.MethodGet, "/api/health", nil)
	gt.Equal(t, rec.Code, http.StatusOK)
}

func TestIngestSession(t *testing.T) {
	e := setup(t)

	rec := e.do(http.MethodPost, "/api/sessions", map[string]any{
		"title":     "Intro to Calculus",
		"url":       "https://example.com/calc",
		"content":   strings.Repeat("derivatives and limits ", 20),
		"timeSpent": 40,
		"timestamp": time.Now(),
	})
	gt.Equal(t, rec.Code, http.StatusAccepted)

	topics, err := e.store.ListAll(context.Background())
	gt.NoError(t, err)
	gt.A(t, topics).Length(1)
	gt.Equal(t, topics[0].MainTopic, "Calculus")
}

func TestIngestRejectsUntrackableSession(t *testing.T) {
	e := setup(t)

	// Too short a visit: must never reach the classify step.
	rec := e.do(http.MethodPost, "/api/sessions", map[string]any{
		"title":     "Intro to Calculus",
		"url":       "https://example.com/calc",
		"content":   strings.Repeat("derivatives ", 20),
		"timeSpent": 10,
	})
	gt.Equal(t, rec.Code, http.StatusUnprocessableEntity)

	// Too thin content.
	rec = e.do(http.MethodPost, "/api/sessions", map[string]any{
		"title":     "Intro to Calculus",
		"url":       "https://example.com/calc",
		"content":   "short",
		"timeSpent": 120,
	})
	gt.Equal(t, rec.Code, http.StatusUnprocessableEntity)

	topics, err := e.store.ListAll(context.Background())
	gt.NoError(t, err)
	gt.A(t, topics).Length(0)
}

func TestIngestRejectsBadJSON(t *testing.T) {
	e := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestListTopics(t *testing.T) {
	e := setup(t)
	e.seed(t, "a", "Calculus")
	e.seed(t, "b", "Physics")

	rec := e.do(http.MethodGet, "/api/topics", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	var resp struct {
		Topics []*model.ScoredTopic `json:"topics"`
		Stats  topic.Stats          `json:"stats"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.A(t, resp.Topics).Length(2)
	gt.Equal(t, resp.Stats.Total, 2)

	// Freshly seeded topics are all in the strong band.
	rec = e.do(http.MethodGet, "/api/topics?filter=forgotten", nil)
	gt.Equal(t, rec.Code, http.StatusOK)
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.A(t, resp.Topics).Length(0)
}

func TestListTopicsUnknownFilter(t *testing.T) {
	e := setup(t)
	rec := e.do(http.MethodGet, "/api/topics?filter=bogus", nil)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestRestoreTopic(t *testing.T) {
	e := setup(t)
	e.seed(t, "a", "Calculus")

	rec := e.do(http.MethodPost, "/api/topics/a/restore", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	// Unknown ID is still success: the store treats it as a no-op.
	rec = e.do(http.MethodPost, "/api/topics/nope/restore", nil)
	gt.Equal(t, rec.Code, http.StatusOK)
}

func TestDeleteTopic(t *testing.T) {
	e := setup(t)
	e.seed(t, "a", "Calculus")

	rec := e.do(http.MethodDelete, "/api/topics/a", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	topics, err := e.store.ListAll(context.Background())
	gt.NoError(t, err)
	gt.A(t, topics).Length(0)
}

func TestClearTopics(t *testing.T) {
	e := setup(t)
	e.seed(t, "a", "Calculus")
	e.seed(t, "b", "Physics")

	rec := e.do(http.MethodDelete, "/api/topics", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	topics, err := e.store.ListAll(context.Background())
	gt.NoError(t, err)
	gt.A(t, topics).Length(0)
}

func TestStats(t *testing.T) {
	e := setup(t)
	e.seed(t, "a", "Calculus")

	rec := e.do(http.MethodGet, "/api/stats", nil)
	gt.Equal(t, rec.Code, http.StatusOK)

	var stats topic.Stats
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	gt.Equal(t, stats.Total, 1)
	gt.Equal(t, stats.NeedsReview, 0)
	gt.Equal(t, stats.AvgScore, 100.0)
}
