package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/KeshavMowar711/AI-Interview-App/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindLatestByUser(clerkUserID string) (*models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindLatestByUser implements ResumeRepository. A missing resume is not an
// error; callers treat (nil, nil) as "no resume context available".
func (r *resumeRepository) FindLatestByUser(clerkUserID string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.
		Where("clerk_user_id = ?", clerkUserID).
		Order("created_at DESC").
		First(&resume).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}
