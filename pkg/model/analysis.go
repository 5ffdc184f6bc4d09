package model

// DefaultComplexity is used whenever a complexity rating is missing or out
// of the 1-5 range.
const DefaultComplexity = 3

// maxAnalysisConcepts caps concepts extracted from a single session. A
// topic accumulates up to MaxConcepts across merges.
const maxAnalysisConcepts = 5

// Analysis is the structured result of analyzing one session, either from
// the external analyzer or from the local fallback.
type Analysis struct {
	MainTopic  string   `json:"mainTopic"`
	Concepts   []string `json:"concepts"`
	Summary    string   `json:"summary"`
	Complexity int      `json:"complexity"`
	Domain     string   `json:"domain"`
}

// Validate coerces every field to a safe default so a partial or malformed
// analyzer response still yields a usable analysis.
func (a *Analysis) Validate() {
	if a.MainTopic == "" {
		a.MainTopic = "General Topic"
	}
	if len(a.Concepts) == 0 {
		a.Concepts = []string{"General"}
	}
	if len(a.Concepts) > maxAnalysisConcepts {
		a.Concepts = a.Concepts[:maxAnalysisConcepts]
	}
	if a.Summary == "" {
		a.Summary = "Learning session"
	}
	if a.Complexity < 1 || a.Complexity > 5 {
		a.Complexity = DefaultComplexity
	}
	if a.Domain == "" {
		a.Domain = "general"
	}
}
