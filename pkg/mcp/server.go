// Package mcp exposes the tracker's command surface as MCP tools over
// stdio, so an agent can inspect and maintain the learning history.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/usecase/topic"
)

// Server wraps an MCP stdio server over the topic use case.
type Server struct {
	uc  *topic.UseCase
	srv *mcp.Server
}

// New builds the MCP server and registers the tools.
func New(uc *topic.UseCase, version string) *Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "recall",
		Version: version,
	}, nil)

	s := &Server{uc: uc, srv: srv}

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_topics",
		Description: "List tracked learning topics with current memory scores. Optional filter: all, strong, review, forgotten",
	}, s.listTopics)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ingest_session",
		Description: "Record one observed learning session (title, url, content, timeSpent seconds)",
	}, s.ingestSession)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "restore_topic",
		Description: "Reset a topic's memory strength to 100% (the \"I remember\" action)",
	}, s.restoreTopic)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_topic",
		Description: "Remove a topic from the learning history",
	}, s.deleteTopic)

	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return goerr.Wrap(err, "mcp server exited")
	}
	return nil
}

type listTopicsParams struct {
	Filter string `json:"filter,omitempty" jsonschema:"Memory band filter: all, strong, review or forgotten"`
}

func (s *Server) listTopics(ctx context.Context, req *mcp.CallToolRequest, params *listTopicsParams) (*mcp.CallToolResult, any, error) {
	var band model.Band
	switch params.Filter {
	case "", "all":
	case "strong":
		band = model.BandStrong
	case "review":
		band = model.BandReview
	case "forgotten":
		band = model.BandForgotten
	default:
		return nil, nil, fmt.Errorf("unknown filter: %s", params.Filter)
	}

	topics, stats, err := s.uc.List(ctx, band)
	if err != nil {
		return nil, nil, err
	}

	payload, err := json.MarshalIndent(map[string]any{
		"topics": topics,
		"stats":  stats,
	}, "", "  ")
	if err != nil {
		return nil, nil, err
	}

	return textResult(string(payload)), nil, nil
}

type ingestSessionParams struct {
	Title     string `json:"title" jsonschema:"Page or video title"`
	URL       string `json:"url" jsonschema:"Source URL"`
	Content   string `json:"content" jsonschema:"Extracted page text"`
	TimeSpent int    `json:"timeSpent" jsonschema:"Engagement time in seconds"`
}

func (s *Server) ingestSession(ctx context.Context, req *mcp.CallToolRequest, params *ingestSessionParams) (*mcp.CallToolResult, any, error) {
	session := &model.Session{
		Title:     params.Title,
		URL:       params.URL,
		Content:   params.Content,
		TimeSpent: params.TimeSpent,
		Timestamp: time.Now(),
	}

	if !session.Trackable() {
		return textResult("session below tracking thresholds, skipped"), nil, nil
	}

	if err := s.uc.Ingest(ctx, session); err != nil {
		return nil, nil, err
	}

	return textResult("session processed"), nil, nil
}

type topicIDParams struct {
	ID string `json:"id" jsonschema:"Topic ID"`
}

func (s *Server) restoreTopic(ctx context.Context, req *mcp.CallToolRequest, params *topicIDParams) (*mcp.CallToolResult, any, error) {
	if params.ID == "" {
		return nil, nil, fmt.Errorf("id is required")
	}
	if err := s.uc.Restore(ctx, model.TopicID(params.ID)); err != nil {
		return nil, nil, err
	}
	return textResult("memory strength restored"), nil, nil
}

func (s *Server) deleteTopic(ctx context.Context, req *mcp.CallToolRequest, params *topicIDParams) (*mcp.CallToolResult, any, error) {
	if params.ID == "" {
		return nil, nil, fmt.Errorf("id is required")
	}
	if err := s.uc.Delete(ctx, model.TopicID(params.ID)); err != nil {
		return nil, nil, err
	}
	return textResult("topic removed"), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
