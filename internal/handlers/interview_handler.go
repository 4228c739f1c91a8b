package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KeshavMowar711/AI-Interview-App/internal/models"
	"github.com/KeshavMowar711/AI-Interview-App/internal/repositories"
	"github.com/KeshavMowar711/AI-Interview-App/internal/services"
)

type InterviewHandler struct {
	interviewRepo repositories.InterviewRepository
	interviewer   services.InterviewerService
}

func NewInterviewHandler(
	interviewRepo repositories.InterviewRepository,
	interviewer services.InterviewerService,
) *InterviewHandler {
	return &InterviewHandler{
		interviewRepo: interviewRepo,
		interviewer:   interviewer,
	}
}

// HandleStartInterview handles POST /api/start-interview
func (h *InterviewHandler) HandleStartInterview(c *fiber.Ctx) error {
	var req models.StartInterviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.JobRole) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jobRole is required",
		})
	}

	if req.ClerkUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "clerkUserId is required",
		})
	}

	interview := &models.Interview{
		ID:          uuid.New(),
		ClerkUserID: req.ClerkUserID,
		JobRole:     req.JobRole,
		CreatedAt:   time.Now(),
	}

	if err := h.interviewRepo.Create(interview); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create interview session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.StartInterviewResponse{
		InterviewID: interview.ID.String(),
	})
}

// HandleGenerateQuestion handles POST /api/generate-question
func (h *InterviewHandler) HandleGenerateQuestion(c *fiber.Ctx) error {
	var req models.GenerateQuestionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.JobRole) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jobRole is required",
		})
	}

	question, err := h.interviewer.GenerateQuestion(c.Context(), req.JobRole, req.ClerkUserID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.GenerateQuestionResponse{
		Question: question,
	})
}

// HandleGradeAnswer handles POST /api/grade-answer
func (h *InterviewHandler) HandleGradeAnswer(c *fiber.Ctx) error {
	var req models.GradeAnswerRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	interviewID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interviewId format",
		})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question is required",
		})
	}

	if strings.TrimSpace(req.UserAnswer) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userAnswer is required",
		})
	}

	result, err := h.interviewer.GradeAnswer(c.Context(), interviewID, req.Question, req.UserAnswer)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Interview not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleListInterviews handles GET /api/interviews?userId={id}
func (h *InterviewHandler) HandleListInterviews(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	interviews, err := h.interviewRepo.FindByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interviews",
		})
	}

	// Serialize an empty history as [], not null.
	if interviews == nil {
		interviews = []models.Interview{}
	}
	for i := range interviews {
		if interviews[i].QAPairs == nil {
			interviews[i].QAPairs = []models.QAPair{}
		}
	}

	return c.JSON(interviews)
}
