package guardrail

import "strings"

// Verdict parsing lives here so prompt-format drift is a one-file fix.

func parseSafetyVerdict(response string) bool {
	return strings.ToUpper(strings.TrimSpace(response)) == "SAFE"
}

// parseGroundingVerdict reads the "VERDICT: ... SAFE_RESPONSE: ..." reply.
// Anything that is not an explicit PASSED counts as failed. The fallback
// answer is returned when the model omitted a SAFE_RESPONSE section.
func parseGroundingVerdict(response string, fallback string) (bool, string) {
	text := strings.TrimSpace(response)
	passed := strings.Contains(text, "VERDICT: PASSED")

	safeAnswer := fallback
	if idx := strings.LastIndex(text, "SAFE_RESPONSE:"); idx >= 0 {
		safeAnswer = strings.TrimSpace(text[idx+len("SAFE_RESPONSE:"):])
	}
	return passed, safeAnswer
}
