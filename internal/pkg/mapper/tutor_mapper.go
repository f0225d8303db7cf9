package mapper

import (
	httpEntity "github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/evandrarf/tutorly-be/internal/quiz"
)

func ToSessionResponse(s *dbEntity.TutorSession) httpEntity.SessionResponse {
	res := httpEntity.SessionResponse{
		ID:        s.ID,
		StudentID: s.StudentID,
		Subject:   s.Subject,
		Status:    s.Status,
		Analysis:  s.Analysis.Clone(),
		CreatedAt: s.CreatedAt,
		EndedAt:   s.EndedAt,
	}
	if s.Status == dbEntity.SessionQuiz && s.Quiz != nil {
		progress := ToQuizProgress(s.Quiz)
		res.Quiz = &progress
	}
	return res
}

func ToSessionResponses(sessions []dbEntity.TutorSession) []httpEntity.SessionResponse {
	out := make([]httpEntity.SessionResponse, len(sessions))
	for i := range sessions {
		out[i] = ToSessionResponse(&sessions[i])
	}
	return out
}

func ToChatMessageResponse(m *dbEntity.ChatMessage) httpEntity.ChatMessageResponse {
	return httpEntity.ChatMessageResponse{
		ID:        m.ID,
		Role:      m.Role,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}

func ToChatMessageResponses(msgs []dbEntity.ChatMessage) []httpEntity.ChatMessageResponse {
	out := make([]httpEntity.ChatMessageResponse, len(msgs))
	for i := range msgs {
		out[i] = ToChatMessageResponse(&msgs[i])
	}
	return out
}

// ToQuestionResponse strips the correct answer and explanation.
func ToQuestionResponse(q quiz.Question) httpEntity.QuestionResponse {
	return httpEntity.QuestionResponse{
		ID:         q.ID,
		Type:       string(q.Type),
		Question:   q.Prompt,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Topic:      q.Topic,
	}
}

func ToQuizProgress(s *quiz.State) httpEntity.QuizProgressResponse {
	res := httpEntity.QuizProgressResponse{
		Answered: s.Position(),
		Total:    s.Total(),
	}
	if q, ok := s.Current(); ok {
		qr := ToQuestionResponse(q)
		res.CurrentQuestion = &qr
	}
	return res
}

func ToQuizResultResponse(a *dbEntity.QuizAttempt) *httpEntity.QuizResultResponse {
	return &httpEntity.QuizResultResponse{
		AttemptID:      a.ID,
		CorrectCount:   a.CorrectCount,
		TotalQuestions: a.TotalQuestions,
		Accuracy:       a.Accuracy,
		Understanding:  a.Understanding,
		Answers:        a.Answers,
	}
}

func ToQuizAttemptResponse(a *dbEntity.QuizAttempt) httpEntity.QuizAttemptResponse {
	return httpEntity.QuizAttemptResponse{
		ID:             a.ID,
		SessionID:      a.SessionID,
		CorrectCount:   a.CorrectCount,
		TotalQuestions: a.TotalQuestions,
		Accuracy:       a.Accuracy,
		Understanding:  a.Understanding,
		Answers:        a.Answers,
		CreatedAt:      a.CreatedAt,
	}
}

func ToQuizAttemptResponses(attempts []dbEntity.QuizAttempt) []httpEntity.QuizAttemptResponse {
	out := make([]httpEntity.QuizAttemptResponse, len(attempts))
	for i := range attempts {
		out[i] = ToQuizAttemptResponse(&attempts[i])
	}
	return out
}

// ToQuizQuestion converts a bank row into a quiz question.
func ToQuizQuestion(q *dbEntity.QuizQuestion) quiz.Question {
	return quiz.Question{
		ID:            q.ID,
		Type:          quiz.ParseQuestionType(q.Type),
		Prompt:        q.Prompt,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
		Topic:         q.Topic,
	}
}

// ToBankQuestion converts a generated question into a bank row for subject.
func ToBankQuestion(subject, generatedBy string, q quiz.Question) dbEntity.QuizQuestion {
	return dbEntity.QuizQuestion{
		Subject:       subject,
		Topic:         q.Topic,
		Type:          string(q.Type),
		Prompt:        q.Prompt,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
		GeneratedBy:   generatedBy,
	}
}
