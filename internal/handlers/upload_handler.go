package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/KeshavMowar711/AI-Interview-App/internal/models"
	"github.com/KeshavMowar711/AI-Interview-App/internal/repositories"
	"github.com/KeshavMowar711/AI-Interview-App/internal/services"
)

type UploadHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewUploadHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadResume handles POST /api/upload-resume. The stored text is
// used to tailor generated questions for this user.
func (h *UploadHandler) HandleUploadResume(c *fiber.Ctx) error {
	clerkUserID := c.FormValue("clerkUserId")
	if clerkUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "clerkUserId is required",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read resume PDF: %v", err),
		})
	}

	resume := &models.Resume{
		ID:               uuid.New(),
		ClerkUserID:      clerkUserID,
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		Text:             text,
		CreatedAt:        time.Now(),
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save resume record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResumeResponse{
		ID:           resume.ID.String(),
		Filename:     resume.Filename,
		OriginalName: resume.OriginalFileName,
	})
}
