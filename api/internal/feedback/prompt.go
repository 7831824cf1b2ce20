package feedback

import (
	"fmt"

	"answer-grader/api/internal/similarity"
)

// BuildPrompt renders the instruction sent to the provider. The output
// depends only on its arguments.
func BuildPrompt(studentAnswer, modelAnswer string, s similarity.Scores) string {
	return fmt.Sprintf(`Provide brief, concise feedback for a student's answer. Keep it SHORT and direct.

Student's Answer: %s
Model Answer: %s
Scores: BLEU=%.3f, ROUGE-1=%.3f, ROUGE-2=%.3f, ROUGE-L=%.3f

Give feedback in this EXACT format (maximum 3-4 sentences total):

**Correct:** [What student got right - 1 sentence]
**Missing:** [Key points student missed - 1 sentence]
**Grade:** [A/B/C/D/F with brief reason - 1 sentence]
**Tip:** [One actionable improvement - 1 sentence]

Be concise, constructive and direct. No lengthy explanations.`,
		studentAnswer, modelAnswer, s.BLEU, s.Rouge1, s.Rouge2, s.RougeL)
}
