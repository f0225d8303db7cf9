package entity

import (
	"time"

	"github.com/evandrarf/tutorly-be/internal/analysis"
	"github.com/evandrarf/tutorly-be/internal/quiz"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionActive = "active"
	SessionQuiz   = "quiz"
	SessionEnded  = "ended"
)

type TutorSession struct {
	ID        string            `gorm:"primaryKey;size:36" json:"id"`
	StudentID string            `gorm:"size:36;not null;index" json:"student_id"`
	Subject   string            `gorm:"size:100;not null" json:"subject"`
	Status    string            `gorm:"size:20;not null;default:active;index" json:"status"` // active, quiz, ended
	Analysis  analysis.Analysis `gorm:"type:text;serializer:json" json:"analysis"`
	Quiz      *quiz.State       `gorm:"type:text;serializer:json" json:"quiz,omitempty"` // nil sampai sesi diakhiri
	EndedAt   *time.Time        `json:"ended_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (TutorSession) TableName() string {
	return "tutor_sessions"
}

func (s *TutorSession) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SessionActive
	}
	return nil
}

// ChatMessage - history chat per session, immutable
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session_id"`
	Role      string    `gorm:"size:20;not null" json:"role"` // user, assistant
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return nil
}
