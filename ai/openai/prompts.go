package openai

import "fmt"

const judgeResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "rationale": {
      "type": "string"
    },
    "matches": {
      "type": "boolean"
    }
  },
  "required": ["rationale", "matches"],
  "additionalProperties": false
}`

const judgeSystemPrompt = `You are an expert at analyzing business and personal profiles.
Your task is to decide whether a profile satisfies the given search criteria.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + judgeResponseSchema + `

Rules:
- "rationale" is a short justification of the decision, one or two sentences.
- "matches" is true only if the profile clearly satisfies the criteria; when in doubt, answer false.
- Base the decision only on what the profile states or clearly implies. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Criteria: "works with hotels"
Profile: "Name: John Smith Business: hospitality consulting Expertise: hotel operations"
Output:
{
  "rationale": "The profile describes hospitality consulting with hotel operations expertise.",
  "matches": true
}

Example:
Criteria: "works with hotels"
Profile: "Name: Carol King Business: pastry shop Expertise: desserts"
Output:
{
  "rationale": "The profile is about a pastry business with no hotel connection.",
  "matches": false
}`

// buildJudgePrompt renders the user message for one classification call.
// Criteria come from free chat text, so punctuation is scrubbed; the profile
// text is passed through as projected.
func buildJudgePrompt(criteria, profileText string) string {
	return fmt.Sprintf("Evaluate the profile against this criteria: %q\n\nProfile:\n%s",
		scrubString(criteria), profileText)
}
