package entity

import (
	"time"

	"github.com/evandrarf/tutorly-be/internal/quiz"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizQuestion - bank soal hasil generate LLM, dipakai ulang saat LLM gagal
type QuizQuestion struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Subject       string         `gorm:"size:100;not null;index" json:"subject"`
	Topic         string         `gorm:"size:150;index" json:"topic"`
	Type          string         `gorm:"size:30;not null" json:"type"`
	Prompt        string         `gorm:"type:text;not null" json:"prompt"`
	Options       []string       `gorm:"type:text;serializer:json" json:"options"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
	Difficulty    string         `gorm:"size:20" json:"difficulty"`
	GeneratedBy   string         `gorm:"size:50;default:llm" json:"generated_by"` // model id, atau seed
	UsageCount    int            `gorm:"default:0" json:"usage_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

func (q *QuizQuestion) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

type QuizAttempt struct {
	ID             string              `gorm:"primaryKey;size:36" json:"id"`
	SessionID      string              `gorm:"size:36;not null;uniqueIndex" json:"session_id"`
	StudentID      string              `gorm:"size:36;not null;index" json:"student_id"`
	CorrectCount   int                 `gorm:"not null" json:"correct_count"`
	TotalQuestions int                 `gorm:"not null" json:"total_questions"`
	Accuracy       int                 `gorm:"not null" json:"accuracy"`
	Understanding  string              `gorm:"size:20;not null" json:"understanding"` // strong, partial, weak
	Answers        []quiz.AnswerResult `gorm:"type:text;serializer:json" json:"answers"`
	CreatedAt      time.Time           `gorm:"index" json:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
