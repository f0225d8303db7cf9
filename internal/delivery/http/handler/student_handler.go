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
	StudentHandler interface {
		Register(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		Report(ctx *fiber.Ctx) error
	}

	studentHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.StudentUsecase
	}
)

func NewStudentHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.StudentUsecase) StudentHandler {
	return &studentHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /students
func (h *studentHandler) Register(ctx *fiber.Ctx) error {
	var req entity.RegisterStudentRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDENT_REGISTER_FAILED, err, h.logger).Send(ctx)
	}

	student, err := h.usecase.Register(ctx.UserContext(), req)
	if err != nil {
		return sendError(ctx, domain.STUDENT_REGISTER_FAILED, err, h.logger)
	}
	return response.NewCreated(domain.STUDENT_REGISTER_SUCCESS, student).Send(ctx)
}

// GET /students/:student_id
func (h *studentHandler) Get(ctx *fiber.Ctx) error {
	student, err := h.usecase.Get(ctx.UserContext(), ctx.Params("student_id"))
	if err != nil {
		return sendError(ctx, domain.STUDENT_GET_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.STUDENT_GET_SUCCESS, student, nil).Send(ctx)
}

// GET /students/:student_id/report
func (h *studentHandler) Report(ctx *fiber.Ctx) error {
	report, err := h.usecase.Report(ctx.UserContext(), ctx.Params("student_id"))
	if err != nil {
		return sendError(ctx, domain.STUDENT_REPORT_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.STUDENT_REPORT_SUCCESS, report, nil).Send(ctx)
}
