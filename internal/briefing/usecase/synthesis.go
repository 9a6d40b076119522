package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"consultant-backend/internal/briefing/domain"
)

// synthesisResult is the structure the model is asked to return
type synthesisResult struct {
	Summary            string   `json:"summary"`
	Gaps               []string `json:"gaps"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// buildPrompt assembles the single deterministic prompt for one
// invocation. Notes are already chronological, most recent last.
func buildPrompt(clientName string, meetingDate time.Time, nextMeeting string, notes []string) string {
	var sb strings.Builder

	sb.WriteString("You are a research assistant preparing a consultant for an upcoming client meeting.\n\n")
	fmt.Fprintf(&sb, "Client: %s\n", clientName)
	fmt.Fprintf(&sb, "Meeting date: %s\n", meetingDate.Format("January 2, 2006"))
	fmt.Fprintf(&sb, "Next meeting: %s\n\n", nextMeeting)

	sb.WriteString("Meeting notes, oldest first:\n")
	for i, note := range notes {
		fmt.Fprintf(&sb, "--- Note %d ---\n%s\n", i+1, note)
	}

	sb.WriteString(`
Respond with ONLY a JSON object, no prose before or after, in this exact shape:
{
  "summary": "concise summary of the prior meetings",
  "gaps": ["open question or missing information"],
  "suggested_questions": ["talking point or question for the upcoming meeting"]
}
`)
	return sb.String()
}

// parseSynthesis extracts the structured reply. Models wrap JSON in code
// fences or prose often enough that we cut from the first '{' to the
// last '}' before unmarshalling. Anything still malformed is
// ErrSynthesisParse.
func parseSynthesis(raw string) (*synthesisResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in response", domain.ErrSynthesisParse)
	}

	var result synthesisResult
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisParse, err)
	}
	if result.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", domain.ErrSynthesisParse)
	}

	if result.Gaps == nil {
		result.Gaps = []string{}
	}
	if result.SuggestedQuestions == nil {
		result.SuggestedQuestions = []string{}
	}
	return &result, nil
}
