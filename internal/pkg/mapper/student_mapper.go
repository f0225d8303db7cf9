package mapper

import (
	httpEntity "github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/tutorly-be/internal/entity"
)

func ToStudentResponse(s *dbEntity.Student) httpEntity.StudentResponse {
	return httpEntity.StudentResponse{
		ID:              s.ID,
		SchoolID:        s.SchoolID,
		Name:            s.Name,
		Email:           s.Email,
		Grade:           s.Grade,
		ApprovalStatus:  s.ApprovalStatus,
		Approved:        s.Approved,
		RejectionReason: s.RejectionReason,
		CreatedAt:       s.CreatedAt,
	}
}
