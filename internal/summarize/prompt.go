package summarize

import "fmt"

const promptTemplate = `You are an AI meeting assistant. Analyze this meeting transcript and provide:
1. A concise summary of key topics discussed
2. A list of action items with assignees (if mentioned)
3. Important decisions made
4. Next steps or follow-up items

Transcript:
---
%s
---

Please format your response as JSON with the following structure:
{
    "summary": "Brief summary of the meeting",
    "action_items": [
        "Action item 1",
        "Action item 2"
    ],
    "decisions": [
        "Decision 1",
        "Decision 2"
    ],
    "next_steps": [
        "Next step 1",
        "Next step 2"
    ]
}`

func buildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}
