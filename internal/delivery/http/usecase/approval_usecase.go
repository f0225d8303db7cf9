package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	httpEntity "github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/evandrarf/tutorly-be/internal/entity"
	"github.com/evandrarf/tutorly-be/internal/pkg/event"
	"github.com/evandrarf/tutorly-be/internal/pkg/mapper"
	"github.com/evandrarf/tutorly-be/internal/pkg/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ApprovalUsecase interface {
	ApproveOrReject(ctx context.Context, req httpEntity.ApprovalRequest) (*httpEntity.ApprovalResult, error)
	ListSchoolStudents(ctx context.Context, req httpEntity.SchoolStudentsRequest) ([]httpEntity.SchoolStudent, error)
}

type ApprovalConfig struct {
	DB       *gorm.DB
	Schools  repository.SchoolRepository
	Students StudentUsecase
	Events   event.Publisher
	Log      *logrus.Logger
}

type approvalUsecase struct {
	cfg ApprovalConfig
}

func NewApprovalUsecase(cfg ApprovalConfig) ApprovalUsecase {
	return &approvalUsecase{cfg: cfg}
}

func (u *approvalUsecase) ApproveOrReject(ctx context.Context, req httpEntity.ApprovalRequest) (*httpEntity.ApprovalResult, error) {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	result, err := u.approveOrReject(ctx, action, req)

	label := action
	if errors.Is(err, ErrInvalidAction) {
		label = "unknown"
	}
	metrics.Approvals.WithLabelValues(label, approvalMetricStatus(err)).Inc()
	return result, err
}

func (u *approvalUsecase) approveOrReject(ctx context.Context, action string, req httpEntity.ApprovalRequest) (*httpEntity.ApprovalResult, error) {
	if action != httpEntity.ActionApprove && action != httpEntity.ActionReject {
		return nil, ErrInvalidAction
	}

	db := u.cfg.DB.WithContext(ctx)
	school, err := u.authenticate(db, req.SchoolID, req.SchoolPassword)
	if err != nil {
		return nil, err
	}

	student, err := u.cfg.Schools.FindStudentByID(db, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	if student.SchoolID != school.ID {
		return nil, ErrStudentNotFound
	}

	eventType := event.StudentApproved
	if action == httpEntity.ActionApprove {
		student.ApprovalStatus = entity.ApprovalApproved
		student.Approved = true
		student.RejectionReason = ""
	} else {
		eventType = event.StudentRejected
		student.ApprovalStatus = entity.ApprovalRejected
		student.Approved = false
		student.RejectionReason = strings.TrimSpace(req.RejectionReason)
	}

	if err := u.cfg.Schools.UpdateStudentApproval(db, student); err != nil {
		return nil, fmt.Errorf("failed to update student approval: %w", err)
	}

	if u.cfg.Events != nil {
		payload := event.StudentApprovalPayload{
			StudentID:       student.ID,
			SchoolID:        school.ID,
			Status:          student.ApprovalStatus,
			RejectionReason: student.RejectionReason,
		}
		if err := u.cfg.Events.Publish(ctx, eventType, payload); err != nil {
			u.cfg.Log.WithError(err).WithField("event", eventType).Warn("Failed to publish event")
		}
	}

	u.cfg.Log.WithFields(logrus.Fields{
		"student_id": student.ID,
		"school_id":  school.ID,
		"status":     student.ApprovalStatus,
	}).Info("Student approval updated")

	return &httpEntity.ApprovalResult{StudentID: student.ID, Status: student.ApprovalStatus}, nil
}

// ListSchoolStudents is the school's roster with a report summary per student.
func (u *approvalUsecase) ListSchoolStudents(ctx context.Context, req httpEntity.SchoolStudentsRequest) ([]httpEntity.SchoolStudent, error) {
	db := u.cfg.DB.WithContext(ctx)
	school, err := u.authenticate(db, req.SchoolID, req.SchoolPassword)
	if err != nil {
		return nil, err
	}

	students, err := u.cfg.Schools.FindStudentsBySchoolID(db, school.ID, req.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	out := make([]httpEntity.SchoolStudent, 0, len(students))
	for i := range students {
		summary, err := u.cfg.Students.Summary(ctx, students[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, httpEntity.SchoolStudent{
			StudentResponse: mapper.ToStudentResponse(&students[i]),
			Report:          summary,
		})
	}
	return out, nil
}

// authenticate treats an unknown school the same as a wrong password.
func (u *approvalUsecase) authenticate(db *gorm.DB, schoolID, password string) (*entity.School, error) {
	school, err := u.cfg.Schools.FindSchoolByID(db, schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find school: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(school.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return school, nil
}

func approvalMetricStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidCredentials):
		return "unauthorized"
	case errors.Is(err, ErrStudentNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidAction):
		return "invalid"
	default:
		return "error"
	}
}
