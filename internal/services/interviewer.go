package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/KeshavMowar711/AI-Interview-App/internal/models"
	"github.com/KeshavMowar711/AI-Interview-App/internal/repositories"
)

type InterviewerService interface {
	GenerateQuestion(ctx context.Context, jobRole, clerkUserID string) (string, error)
	GradeAnswer(ctx context.Context, interviewID uuid.UUID, question, userAnswer string) (*models.GradeAnswerResponse, error)
}

type interviewerService struct {
	interviewRepo repositories.InterviewRepository
	resumeRepo    repositories.ResumeRepository
	geminiService GeminiService
	memory        QuestionMemory
	indexer       Indexer
	promptBuilder *PromptBuilder
	maxRetries    int
	memoryLimit   int
}

func NewInterviewerService(
	interviewRepo repositories.InterviewRepository,
	resumeRepo repositories.ResumeRepository,
	geminiService GeminiService,
	memory QuestionMemory,
	indexer Indexer,
	maxRetries int,
	memoryLimit int,
) InterviewerService {
	return &interviewerService{
		interviewRepo: interviewRepo,
		resumeRepo:    resumeRepo,
		geminiService: geminiService,
		memory:        memory,
		indexer:       indexer,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		memoryLimit:   memoryLimit,
	}
}

type gradeResult struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Improvement string `json:"improvement"`
}

// GenerateQuestion implements InterviewerService. clerkUserID is optional;
// when present the user's latest resume and question memory season the prompt.
func (s *interviewerService) GenerateQuestion(ctx context.Context, jobRole, clerkUserID string) (string, error) {
	resumeContext := s.resumeContext(clerkUserID)
	avoid := s.recentQuestions(ctx, jobRole)

	prompt := s.promptBuilder.BuildQuestionPrompt(jobRole, resumeContext, avoid)

	question, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.8, s.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to generate question: %w", err)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("model returned an empty question")
	}

	return question, nil
}

// GradeAnswer implements InterviewerService. The QAPair is appended with the
// answer exactly as submitted; the question is indexed asynchronously so a
// slow memory never delays the grade response.
func (s *interviewerService) GradeAnswer(ctx context.Context, interviewID uuid.UUID, question, userAnswer string) (*models.GradeAnswerResponse, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		return nil, err
	}

	prompt := s.promptBuilder.BuildGradingPrompt(interview.JobRole, question, userAnswer)

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to grade answer: %w", err)
	}

	var result gradeResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("failed to parse grading response: %w", err)
	}

	result.Score = clampScore(result.Score)

	pair := &models.QAPair{
		ID:         uuid.New(),
		Question:   question,
		UserAnswer: userAnswer,
		AIFeedback: result.Feedback,
		Score:      result.Score,
	}
	if err := s.interviewRepo.AppendQAPair(interview.ID, pair); err != nil {
		return nil, err
	}

	if s.indexer != nil {
		s.indexer.Enqueue(IndexJob{
			InterviewID: interview.ID,
			JobRole:     interview.JobRole,
			Question:    question,
		})
	}

	return &models.GradeAnswerResponse{
		Score:       result.Score,
		Feedback:    result.Feedback,
		Improvement: result.Improvement,
	}, nil
}

func (s *interviewerService) resumeContext(clerkUserID string) string {
	if clerkUserID == "" {
		return ""
	}

	resume, err := s.resumeRepo.FindLatestByUser(clerkUserID)
	if err != nil {
		log.Printf("⚠️  Failed to load resume for %s: %v\n", clerkUserID, err)
		return ""
	}
	if resume == nil {
		return ""
	}
	return resume.Text
}

// recentQuestions is best effort: a broken memory degrades to the model
// possibly repeating itself, never to a failed generate call.
func (s *interviewerService) recentQuestions(ctx context.Context, jobRole string) []string {
	if s.memory == nil || s.memoryLimit <= 0 {
		return nil
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, fmt.Sprintf("Technical interview question for a %s", jobRole))
	if err != nil {
		log.Printf("⚠️  Failed to embed memory query: %v\n", err)
		return nil
	}

	remembered, err := s.memory.SimilarQuestions(ctx, jobRole, embedding, s.memoryLimit)
	if err != nil {
		log.Printf("⚠️  Question memory lookup failed: %v\n", err)
		return nil
	}

	var questions []string
	for _, r := range remembered {
		if r.Question != "" {
			questions = append(questions, r.Question)
		}
	}
	return questions
}

func clampScore(score int) int {
	if score < models.MinScore {
		return models.MinScore
	}
	if score > models.MaxScore {
		return models.MaxScore
	}
	return score
}

func parseJSONResponse(response string, target interface{}) error {
	// The LLM may wrap its JSON in markdown fences.
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
