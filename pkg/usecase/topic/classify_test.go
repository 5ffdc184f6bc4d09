package topic

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/genai"

	"github.com/m-mizutani/recall/pkg/model"
)

// stubGemini returns canned responses, or an error when err is set.
type stubGemini struct {
	text  string
	err   error
	calls int
}

func (s *stubGemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: s.text}},
				},
			},
		},
	}, nil
}

func TestLikelyEducational(t *testing.T) {
	cases := []struct {
		name  string
		title string
		url   string
		want  bool
	}{
		{"edu keyword", "Python Tutorial for Beginners", "https://example.com", true},
		{"entertainment keyword", "Official Video - Greatest Hits", "https://example.com", false},
		{"entertainment beats educational", "Python Tutorial Reaction", "https://example.com", false},
		{"youtube without signal", "Random Upload 42", "https://youtube.com/watch?v=x", false},
		{"youtube with edu keyword", "Calculus Lecture 1", "https://youtube.com/watch?v=y", true},
		{"known edu platform", "Week 3 Materials", "https://coursera.org/course", true},
		{"unknown domain without signal", "My Favorite Things", "https://example.com/post", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, likelyEducational(tc.url, tc.title), tc.want)
		})
	}
}

func TestClassifyAffirmative(t *testing.T) {
	ctx := context.Background()
	session := &model.Session{Title: "Anything", URL: "https://example.com", Content: "text"}

	for _, answer := range []string{"YES", "yes", " Yes.", "YES\n"} {
		uc := &UseCase{gemini: &stubGemini{text: answer}}
		gt.True(t, uc.classify(ctx, session))
	}

	for _, answer := range []string{"NO", "no", "Nope"} {
		uc := &UseCase{gemini: &stubGemini{text: answer}}
		gt.False(t, uc.classify(ctx, session))
	}
}

func TestClassifyFallsBackOnError(t *testing.T) {
	ctx := context.Background()
	uc := &UseCase{gemini: &stubGemini{err: goerr.New("unreachable")}}

	edu := &model.Session{Title: "Calculus Lecture", URL: "https://example.com", Content: "derivatives"}
	gt.True(t, uc.classify(ctx, edu))

	ent := &model.Session{Title: "Funny Meme Compilation", URL: "https://example.com", Content: "lol"}
	gt.False(t, uc.classify(ctx, ent))
}

func TestClassifyFallsBackOnEmptyResponse(t *testing.T) {
	ctx := context.Background()
	uc := &UseCase{gemini: &stubGemini{text: ""}}

	session := &model.Session{Title: "Physics Explained", URL: "https://example.com", Content: "forces"}
	gt.True(t, uc.classify(ctx, session))
}

func TestClassifyWithoutGeminiUsesFallback(t *testing.T) {
	ctx := context.Background()
	uc := &UseCase{}

	session := &model.Session{Title: "How to Bake Bread", URL: "https://example.com", Content: strings.Repeat("x", 500)}
	gt.True(t, uc.classify(ctx, session))
}
