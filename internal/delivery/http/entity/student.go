package entity

import (
	"time"

	"github.com/evandrarf/tutorly-be/internal/analysis"
)

type RegisterStudentRequest struct {
	SchoolID string `json:"school_id" validate:"required"`
	Name     string `json:"name" validate:"required,notblank,max=150"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Grade    string `json:"grade" validate:"max=20"`
}

type StudentResponse struct {
	ID              string    `json:"id"`
	SchoolID        string    `json:"school_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Grade           string    `json:"grade,omitempty"`
	ApprovalStatus  string    `json:"approval_status"`
	Approved        bool      `json:"approved"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ReportSummary struct {
	SessionCount        int    `json:"session_count"`
	QuizAttemptCount    int    `json:"quiz_attempt_count"`
	AverageAccuracy     int    `json:"average_accuracy"`
	LatestUnderstanding string `json:"latest_understanding,omitempty"`
}

// Report lengkap untuk satu siswa
type StudentReport struct {
	Student StudentResponse `json:"student"`
	ReportSummary
	Analysis       analysis.Analysis     `json:"analysis"`
	RecentAttempts []QuizAttemptResponse `json:"recent_attempts"`
}
