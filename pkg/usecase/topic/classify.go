package topic

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/m-mizutani/recall/pkg/model"
	"github.com/m-mizutani/recall/pkg/utils/logging"
)

//go:embed prompt/classify.md
var classifyPromptRaw string

var classifyPromptTmpl = template.Must(template.New("classify").Parse(classifyPromptRaw))

// classifySnippetLen is how much extracted content the classifier sees.
const classifySnippetLen = 800

// classify decides whether the session is educational content. Any
// collaborator failure degrades to the keyword heuristic; this never
// returns an error.
func (u *UseCase) classify(ctx context.Context, session *model.Session) bool {
	if u.gemini == nil {
		return likelyEducational(session.URL, session.Title)
	}

	snippet := session.Content
	if len(snippet) > classifySnippetLen {
		snippet = snippet[:classifySnippetLen]
	}

	var buf bytes.Buffer
	if err := classifyPromptTmpl.Execute(&buf, map[string]any{
		"Title":   session.Title,
		"URL":     session.URL,
		"Content": snippet,
	}); err != nil {
		logging.From(ctx).Warn("failed to build classify prompt, using fallback", "error", err)
		return likelyEducational(session.URL, session.Title)
	}

	callCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	resp, err := u.gemini.GenerateContent(callCtx,
		[]*genai.Content{genai.NewContentFromText(buf.String(), genai.RoleUser)},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.1),
			MaxOutputTokens: 10,
		})
	if err != nil {
		logging.From(ctx).Warn("classifier call failed, using fallback", "error", err)
		return likelyEducational(session.URL, session.Title)
	}

	answer := responseText(resp)
	if answer == "" {
		logging.From(ctx).Warn("classifier returned empty response, using fallback")
		return likelyEducational(session.URL, session.Title)
	}

	// The affirmative marker is parsed case-insensitively from the token.
	return strings.Contains(strings.ToUpper(strings.TrimSpace(answer)), "YES")
}

// responseText pulls the first text part out of a generation response.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}

// Entertainment keywords take precedence over educational ones.
var entertainmentKeywords = []string{
	"song", "music video", "official video", "lyric", "lyrics",
	"trailer", "movie", "full movie", "film", "episode",
	"vlog", "daily vlog", "my day", "lifestyle",
	"funny", "comedy", "meme", "prank",
	"gameplay", "let's play", "gaming", "stream",
	"reaction", "reacting to", "review",
	"news", "breaking news", "latest news",
	"highlights", "match", "goals", "sports",
}

var educationalKeywords = []string{
	"tutorial", "learn", "course", "lecture", "lesson",
	"guide", "how to", "explained", "explanation",
	"programming", "coding", "python", "javascript", "java",
	"mathematics", "math", "calculus", "algebra",
	"physics", "chemistry", "biology", "science",
	"history", "geography", "economics",
	"language learning", "grammar", "vocabulary",
	"study", "exam", "preparation", "concept",
}

var educationalDomains = []string{
	"coursera.org", "udemy.com", "khanacademy.org", "edx.org",
}

// likelyEducational is the deterministic classifier fallback over title
// and URL keyword lists. Video hosting without a clear educational signal
// is rejected; otherwise only known educational platforms pass.
func likelyEducational(url, title string) bool {
	titleLower := strings.ToLower(title)

	for _, kw := range entertainmentKeywords {
		if strings.Contains(titleLower, kw) {
			return false
		}
	}

	for _, kw := range educationalKeywords {
		if strings.Contains(titleLower, kw) {
			return true
		}
	}

	if strings.Contains(url, "youtube.com") {
		return false
	}

	for _, domain := range educationalDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}

	return false
}
