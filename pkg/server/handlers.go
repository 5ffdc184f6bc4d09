package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIngest accepts one captured session. The capture-side pre-filter
// applies here: too-short visits or too-thin content are rejected before
// the pipeline's classify step ever runs.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var session model.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if !session.Trackable() {
		writeError(w, http.StatusUnprocessableEntity, "session below tracking thresholds")
		return
	}

	if err := s.uc.Ingest(r.Context(), &session); err != nil {
		logging.From(r.Context()).Error("ingestion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	band, ok := parseBand(r.URL.Query().Get("filter"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown filter")
		return
	}

	topics, stats, err := s.uc.List(r.Context(), band)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load topics")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topics": topics,
		"stats":  stats,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_, stats, err := s.uc.List(r.Context(), "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load topics")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	id := model.TopicID(chi.URLParam(r, "topicID"))

	if err := s.uc.Restore(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to restore topic")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := model.TopicID(chi.URLParam(r, "topicID"))

	if err := s.uc.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete topic")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear topics")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func parseBand(filter string) (model.Band, bool) {
	switch filter {
	case "", "all":
		return "", true
	case "strong":
		return model.BandStrong, true
	case "review":
		return model.BandReview, true
	case "forgotten":
		return model.BandForgotten, true
	default:
		return "", false
	}
}
