package entity

import (
	"time"

	"github.com/evandrarf/tutorly-be/internal/analysis"
	"github.com/evandrarf/tutorly-be/internal/quiz"
)

type StartSessionRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required,notblank,max=100"`
}

type SessionResponse struct {
	ID        string                `json:"id"`
	StudentID string                `json:"student_id"`
	Subject   string                `json:"subject"`
	Status    string                `json:"status"`
	Analysis  analysis.Analysis     `json:"analysis"`
	Quiz      *QuizProgressResponse `json:"quiz,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	EndedAt   *time.Time            `json:"ended_at,omitempty"`
}

// Request untuk kirim pesan ke tutor
type SendMessageRequest struct {
	Content  string `json:"content" validate:"required,notblank,max=4000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatTurnResponse struct {
	SessionID       string              `json:"session_id"`
	Message         ChatMessageResponse `json:"message"`
	Reply           ChatMessageResponse `json:"reply"`
	Analysis        analysis.Analysis   `json:"analysis"`
	AnalysisUpdated bool                `json:"analysis_updated"`
}

// QuestionResponse never carries the correct answer.
type QuestionResponse struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Options    []string `json:"options,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Topic      string   `json:"topic,omitempty"`
}

type QuizProgressResponse struct {
	Answered        int               `json:"answered"`
	Total           int               `json:"total"`
	CurrentQuestion *QuestionResponse `json:"current_question,omitempty"`
}

type EndSessionResponse struct {
	SessionID string                `json:"session_id"`
	Status    string                `json:"status"`
	Quiz      *QuizProgressResponse `json:"quiz,omitempty"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required,notblank,max=1000"`
}

type SubmitAnswerResponse struct {
	SessionID  string               `json:"session_id"`
	QuestionID string               `json:"question_id"`
	IsCorrect  bool                 `json:"is_correct"`
	Progress   QuizProgressResponse `json:"progress"`
	QuizResult *QuizResultResponse  `json:"quiz_result,omitempty"`
}

type QuizResultResponse struct {
	AttemptID      string              `json:"attempt_id"`
	CorrectCount   int                 `json:"correct_count"`
	TotalQuestions int                 `json:"total_questions"`
	Accuracy       int                 `json:"accuracy"`
	Understanding  string              `json:"understanding"`
	Answers        []quiz.AnswerResult `json:"answers"`
}

type QuizAttemptResponse struct {
	ID             string              `json:"id"`
	SessionID      string              `json:"session_id"`
	CorrectCount   int                 `json:"correct_count"`
	TotalQuestions int                 `json:"total_questions"`
	Accuracy       int                 `json:"accuracy"`
	Understanding  string              `json:"understanding"`
	Answers        []quiz.AnswerResult `json:"answers,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
