package summarize

import "encoding/json"

// Analysis is the structured meeting summary returned to clients.
type Analysis struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
	Decisions   []string `json:"decisions"`
	NextSteps   []string `json:"next_steps"`
}

// shape parses service output as the required JSON schema. Malformed
// structured output degrades into an unstructured summary rather than an
// error: the raw text becomes the summary and the lists stay empty.
func shape(raw string) Analysis {
	var a Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil || a.Summary == "" {
		return Analysis{
			Summary:     raw,
			ActionItems: []string{},
			Decisions:   []string{},
			NextSteps:   []string{},
		}
	}
	if a.ActionItems == nil {
		a.ActionItems = []string{}
	}
	if a.Decisions == nil {
		a.Decisions = []string{}
	}
	if a.NextSteps == nil {
		a.NextSteps = []string{}
	}
	return a
}
