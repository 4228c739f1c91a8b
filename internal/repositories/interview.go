package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KeshavMowar711/AI-Interview-App/internal/models"
)

var ErrInterviewNotFound = errors.New("interview not found")

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByID(id uuid.UUID) (*models.Interview, error)
	FindByUser(clerkUserID string) ([]models.Interview, error)
	AppendQAPair(interviewID uuid.UUID, pair *models.QAPair) error
	AllQuestions() ([]AskedQuestion, error)
}

// AskedQuestion is one stored question tagged with its interview and role,
// used to rebuild the question memory.
type AskedQuestion struct {
	InterviewID uuid.UUID
	JobRole     string
	Question    string
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByID(id uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("QAPairs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

// FindByUser returns the user's interviews, newest first, with qa_pairs
// embedded in original grading order.
func (r *interviewRepository) FindByUser(clerkUserID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Preload("QAPairs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("clerk_user_id = ?", clerkUserID).
		Order("created_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find interviews: %w", err)
	}
	return interviews, nil
}

// AppendQAPair assigns the next position inside a transaction so the
// append-only ordering survives concurrent grade calls.
func (r *interviewRepository) AppendQAPair(interviewID uuid.UUID, pair *models.QAPair) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.QAPair{}).
			Where("interview_id = ?", interviewID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count qa pairs: %w", err)
		}

		pair.InterviewID = interviewID
		pair.Position = int(count)

		if err := tx.Create(pair).Error; err != nil {
			return fmt.Errorf("failed to append qa pair: %w", err)
		}
		return nil
	})
}

func (r *interviewRepository) AllQuestions() ([]AskedQuestion, error) {
	var questions []AskedQuestion
	err := r.db.Model(&models.QAPair{}).
		Select("qa_pairs.interview_id, interviews.job_role, qa_pairs.question").
		Joins("JOIN interviews ON interviews.id = qa_pairs.interview_id").
		Order("qa_pairs.created_at ASC").
		Scan(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}
