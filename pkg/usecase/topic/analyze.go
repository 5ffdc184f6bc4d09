package topic

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

//go:embed prompt/analyze.md
var analyzePromptRaw string

var analyzePromptTmpl = template.Must(template.New("analyze").Parse(analyzePromptRaw))

// analyzeSnippetLen is how much extracted content the analyzer sees.
const analyzeSnippetLen = 2000

// analyze extracts the broad subject, concepts and summary of a session.
// Collaborator failure or an unparseable response degrades to the keyword
// fallback; this never returns an error and every field of the result has
// been validated.
func (u *UseCase) analyze(ctx context.Context, session *model.Session) *model.Analysis {
	analysis := u.analyzeWithGemini(ctx, session)
	if analysis == nil {
		analysis = fallbackAnalysis(session)
	}
	analysis.Validate()
	return analysis
}

func (u *UseCase) analyzeWithGemini(ctx context.Context, session *model.Session) *model.Analysis {
	if u.gemini == nil {
		return nil
	}

	snippet := session.Content
	if len(snippet) > analyzeSnippetLen {
		snippet = snippet[:analyzeSnippetLen]
	}

	var buf bytes.Buffer
	if err := analyzePromptTmpl.Execute(&buf, map[string]any{
		"Title":   session.Title,
		"Content": snippet,
	}); err != nil {
		logging.From(ctx).Warn("failed to build analyze prompt, using fallback", "error", err)
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	resp, err := u.gemini.GenerateContent(callCtx,
		[]*genai.Content{genai.NewContentFromText(buf.String(), genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.4),
			MaxOutputTokens: 600,
		})
	if err != nil {
		logging.From(ctx).Warn("analyzer call failed, using fallback", "error", err)
		return nil
	}

	block := extractJSONBlock(responseText(resp))
	if block == "" {
		logging.From(ctx).Warn("no JSON object in analyzer response, using fallback")
		return nil
	}

	var analysis model.Analysis
	if err := json.Unmarshal([]byte(block), &analysis); err != nil {
		logging.From(ctx).Warn("failed to parse analyzer response, using fallback", "error", err)
		return nil
	}

	return &analysis
}

// extractJSONBlock returns the first balanced {...} block from text, which
// may wrap the JSON object in markdown fences or prose. Returns "" when no
// balanced block exists.
func extractJSONBlock(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// fallbackSubject maps a title keyword to a canonical broad subject.
type fallbackSubject struct {
	keyword    string
	mainTopic  string
	domain     string
	complexity int
}

// In match order; "java" must not shadow "javascript", so javascript is
// checked first and the java entry is guarded below.
var fallbackSubjects = []fallbackSubject{
	{"javascript", "JavaScript Programming", "programming", 3},
	{"js", "JavaScript Programming", "programming", 3},
	{"python", "Python Programming", "programming", 3},
	{"java", "Java Programming", "programming", 3},
	{"react", "Web Development", "programming", 4},
	{"vue", "Web Development", "programming", 4},
	{"angular", "Web Development", "programming", 4},
	{"html", "Web Development", "programming", 2},
	{"css", "Web Development", "programming", 2},
	{"calculus", "Calculus", "mathematics", 4},
	{"algebra", "Algebra", "mathematics", 3},
	{"math", "Mathematics", "mathematics", 3},
	{"physics", "Physics", "science", 4},
	{"chemistry", "Chemistry", "science", 4},
	{"biology", "Biology", "science", 3},
	{"history", "History", "history", 3},
	{"english", "English Language", "language", 2},
	{"grammar", "English Language", "language", 2},
}

const fallbackTopicLen = 40

// fallbackAnalysis derives a deterministic analysis from the title alone.
func fallbackAnalysis(session *model.Session) *model.Analysis {
	title := session.Title
	titleLower := strings.ToLower(title)

	analysis := &model.Analysis{
		Concepts:   []string{truncate(title, 50)},
		Summary:    "Learning session: " + title,
		Complexity: model.DefaultComplexity,
		Domain:     "general",
	}

	for _, s := range fallbackSubjects {
		if !strings.Contains(titleLower, s.keyword) {
			continue
		}
		if s.keyword == "java" && strings.Contains(titleLower, "javascript") {
			continue
		}
		analysis.MainTopic = s.mainTopic
		analysis.Domain = s.domain
		analysis.Complexity = s.complexity
		return analysis
	}

	analysis.MainTopic = strings.TrimSpace(truncate(title, fallbackTopicLen))
	return analysis
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
