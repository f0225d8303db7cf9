package handler

import (
	"github.com/evandrarf/tutorly-be/internal/delivery/http/domain"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/usecase"
	"github.com/evandrarf/tutorly-be/internal/pkg/response"
	"github.com/evandrarf/tutorly-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	ApprovalHandler interface {
		ApproveOrReject(ctx *fiber.Ctx) error
		SchoolStudents(ctx *fiber.Ctx) error
	}

	approvalHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.ApprovalUsecase
	}
)

func NewApprovalHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.ApprovalUsecase) ApprovalHandler {
	return &approvalHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /approvals
// body: {action, schoolId, schoolPassword, studentId, rejectionReason?}
func (h *approvalHandler) ApproveOrReject(ctx *fiber.Ctx) error {
	var req entity.ApprovalRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.APPROVAL_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.ApproveOrReject(ctx.UserContext(), req)
	if err != nil {
		return sendError(ctx, domain.APPROVAL_FAILED, err, h.logger)
	}

	return response.NewSuccess(domain.APPROVAL_SUCCESS, result, nil).WithStatus(result.Status).Send(ctx)
}

// POST /schools/students
func (h *approvalHandler) SchoolStudents(ctx *fiber.Ctx) error {
	var req entity.SchoolStudentsRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCHOOL_STUDENTS_FAILED, err, h.logger).Send(ctx)
	}

	students, err := h.usecase.ListSchoolStudents(ctx.UserContext(), req)
	if err != nil {
		return sendError(ctx, domain.SCHOOL_STUDENTS_FAILED, err, h.logger)
	}

	return response.NewSuccess(domain.SCHOOL_STUDENTS_SUCCESS, students, fiber.Map{"total": len(students)}).Send(ctx)
}
