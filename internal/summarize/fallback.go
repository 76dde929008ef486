package summarize

import (
	"fmt"
	"strings"
)

// meetingKeywords are the topic markers the local heuristic scans for.
var meetingKeywords = map[string]bool{
	"project": true, "task": true, "deadline": true, "team": true,
	"meeting": true, "discuss": true, "decision": true, "action": true,
	"next": true, "follow": true, "up": true,
}

const maxReportedKeywords = 5

// Fallback produces a deterministic local analysis when the chat-completion
// service is unavailable. It always succeeds: an empty transcript yields a
// zero word count and no keywords, not an error.
func Fallback(transcript string) Analysis {
	words := strings.Fields(transcript)

	seen := make(map[string]bool)
	var found []string
	for _, w := range words {
		lw := strings.ToLower(w)
		if meetingKeywords[lw] && !seen[lw] {
			seen[lw] = true
			found = append(found, lw)
			if len(found) == maxReportedKeywords {
				break
			}
		}
	}

	return Analysis{
		Summary: fmt.Sprintf(
			"This meeting transcript contains %d words. Key topics mentioned include: %s. "+
				"Due to AI service unavailability, this is a basic automated analysis.",
			len(words), strings.Join(found, ", ")),
		ActionItems: []string{
			"Review meeting transcript for specific action items",
			"Follow up on discussed topics",
			"Schedule next meeting if needed",
		},
		Decisions: []string{
			"Specific decisions need manual review from transcript",
		},
		NextSteps: []string{
			"Manual review of transcript recommended",
			"AI analysis will be available when service is restored",
		},
	}
}
