package services

import (
	"fmt"
	"strings"
)

const maxResumeContextChars = 6000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt creates the prompt for one technical interview question.
func (pb *PromptBuilder) BuildQuestionPrompt(jobRole, resumeContext string, avoidQuestions []string) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf(`You are a senior %s conducting a technical interview for a %s position.

Ask exactly ONE technical interview question appropriate for this role.
The question should test practical, hands-on knowledge rather than trivia.
Format the question in markdown. Do not include the answer, hints, or any
preamble such as "Here is your question".`, jobRole, jobRole))

	if resumeContext != "" {
		prompt.WriteString("\n\nCANDIDATE RESUME (tailor the question to their background where sensible):\n")
		prompt.WriteString(truncate(resumeContext, maxResumeContextChars))
	}

	if len(avoidQuestions) > 0 {
		prompt.WriteString("\n\nThe candidate was already asked the following questions. Ask something substantially different:\n")
		for i, q := range avoidQuestions {
			prompt.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSpace(q)))
		}
	}

	prompt.WriteString("\n\nReturn ONLY the question text.")

	return prompt.String()
}

// BuildGradingPrompt creates the prompt for grading a candidate's answer.
func (pb *PromptBuilder) BuildGradingPrompt(jobRole, question, userAnswer string) string {
	return fmt.Sprintf(`You are an expert technical interviewer evaluating a candidate for a %s position.

QUESTION ASKED:
%s

CANDIDATE'S ANSWER:
%s

Grade the answer on a 0-10 integer scale where 0 is no relevant content and
10 is a complete, accurate, well-structured answer.

Return your response in the following JSON format:
{
  "score": <integer 0-10>,
  "feedback": "<markdown critique, 2-4 sentences, specific to what the candidate wrote>",
  "improvement": "<markdown suggestion describing how to strengthen the answer>"
}

Be objective. Reference concrete points from the candidate's answer to justify the score.`,
		jobRole, question, userAnswer)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
