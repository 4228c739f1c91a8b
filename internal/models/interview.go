package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinScore = 0
	MaxScore = 10
)

type Interview struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClerkUserID string    `gorm:"type:text;not null;index" json:"clerkUserId"`
	JobRole     string    `gorm:"type:text;not null" json:"jobRole"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"createdAt"`

	// Relations
	QAPairs []QAPair `gorm:"foreignKey:InterviewID" json:"qaPairs"`
}

func (Interview) TableName() string {
	return "interviews"
}

// QAPair is one completed grading round. It only ever exists whole: a
// question plus the graded answer, appended once the grade call succeeds.
type QAPair struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	InterviewID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position    int       `gorm:"not null" json:"-"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	UserAnswer  string    `gorm:"type:text;not null" json:"userAnswer"`
	AIFeedback  string    `gorm:"type:text;not null" json:"aiFeedback"`
	Score       int       `gorm:"not null" json:"score"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"-"`
}

func (QAPair) TableName() string {
	return "qa_pairs"
}
