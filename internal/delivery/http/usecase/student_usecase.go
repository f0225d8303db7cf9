package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/evandrarf/tutorly-be/internal/analysis"
	httpEntity "github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/evandrarf/tutorly-be/internal/pkg/mapper"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentAttemptLimit = 5

type StudentUsecase interface {
	Register(ctx context.Context, req httpEntity.RegisterStudentRequest) (*httpEntity.StudentResponse, error)
	Get(ctx context.Context, studentID string) (*httpEntity.StudentResponse, error)
	Report(ctx context.Context, studentID string) (*httpEntity.StudentReport, error)
	Summary(ctx context.Context, studentID string) (httpEntity.ReportSummary, error)
}

type StudentConfig struct {
	DB       *gorm.DB
	Schools  repository.SchoolRepository
	Sessions repository.TutorSessionRepository
	Quizzes  repository.QuizRepository
	Log      *logrus.Logger
}

type studentUsecase struct {
	cfg StudentConfig
}

func NewStudentUsecase(cfg StudentConfig) StudentUsecase {
	return &studentUsecase{cfg: cfg}
}

// Register creates a pending student; the school approves it later.
func (u *studentUsecase) Register(ctx context.Context, req httpEntity.RegisterStudentRequest) (*httpEntity.StudentResponse, error) {
	db := u.cfg.DB.WithContext(ctx)

	if _, err := u.cfg.Schools.FindSchoolByID(db, req.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to find school: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := u.cfg.Schools.FindStudentByEmail(db, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	student := &entity.Student{
		SchoolID:       req.SchoolID,
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		Grade:          strings.TrimSpace(req.Grade),
		ApprovalStatus: entity.ApprovalPending,
	}
	if err := u.cfg.Schools.CreateStudent(db, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	u.cfg.Log.WithFields(logrus.Fields{
		"student_id": student.ID,
		"school_id":  student.SchoolID,
	}).Info("Student registered")

	res := mapper.ToStudentResponse(student)
	return &res, nil
}

func (u *studentUsecase) Get(ctx context.Context, studentID string) (*httpEntity.StudentResponse, error) {
	student, err := u.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	res := mapper.ToStudentResponse(student)
	return &res, nil
}

func (u *studentUsecase) Report(ctx context.Context, studentID string) (*httpEntity.StudentReport, error) {
	student, err := u.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	db := u.cfg.DB.WithContext(ctx)
	sessions, err := u.cfg.Sessions.FindByStudentID(db, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	attempts, err := u.cfg.Quizzes.FindAttemptsByStudentID(db, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz attempts: %w", err)
	}

	// sessions come newest first, Combine wants oldest first. Sessions with
	// nothing reported would reset the understanding to the default.
	all := make([]analysis.Analysis, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].Analysis.IsEmpty() {
			continue
		}
		all = append(all, sessions[i].Analysis)
	}

	recent := attempts
	if len(recent) > recentAttemptLimit {
		recent = recent[:recentAttemptLimit]
	}

	return &httpEntity.StudentReport{
		Student:        mapper.ToStudentResponse(student),
		ReportSummary:  summarize(len(sessions), attempts),
		Analysis:       analysis.Combine(all...),
		RecentAttempts: mapper.ToQuizAttemptResponses(recent),
	}, nil
}

func (u *studentUsecase) Summary(ctx context.Context, studentID string) (httpEntity.ReportSummary, error) {
	db := u.cfg.DB.WithContext(ctx)
	sessions, err := u.cfg.Sessions.FindByStudentID(db, studentID)
	if err != nil {
		return httpEntity.ReportSummary{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	attempts, err := u.cfg.Quizzes.FindAttemptsByStudentID(db, studentID)
	if err != nil {
		return httpEntity.ReportSummary{}, fmt.Errorf("failed to load quiz attempts: %w", err)
	}
	return summarize(len(sessions), attempts), nil
}

func (u *studentUsecase) findStudent(ctx context.Context, studentID string) (*entity.Student, error) {
	student, err := u.cfg.Schools.FindStudentByID(u.cfg.DB.WithContext(ctx), studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return student, nil
}

// summarize expects attempts newest first.
func summarize(sessionCount int, attempts []entity.QuizAttempt) httpEntity.ReportSummary {
	summary := httpEntity.ReportSummary{
		SessionCount:     sessionCount,
		QuizAttemptCount: len(attempts),
	}
	if len(attempts) == 0 {
		return summary
	}

	total := 0
	for _, a := range attempts {
		total += a.Accuracy
	}
	summary.AverageAccuracy = int(math.Round(float64(total) / float64(len(attempts))))
	summary.LatestUnderstanding = attempts[0].Understanding
	return summary
}
