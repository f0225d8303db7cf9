package handler

import (
	"strings"

	"github.com/evandrarf/tutorly-be/internal/delivery/http/domain"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/entity"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/usecase"
	"github.com/evandrarf/tutorly-be/internal/pkg/response"
	"github.com/evandrarf/tutorly-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	TutorHandler interface {
		StartSession(ctx *fiber.Ctx) error
		GetSession(ctx *fiber.Ctx) error
		ListSessions(ctx *fiber.Ctx) error
		SendMessage(ctx *fiber.Ctx) error
		History(ctx *fiber.Ctx) error
		Analysis(ctx *fiber.Ctx) error
		EndSession(ctx *fiber.Ctx) error
		QuizProgress(ctx *fiber.Ctx) error
		SubmitAnswer(ctx *fiber.Ctx) error
		ListQuizAttempts(ctx *fiber.Ctx) error
	}

	tutorHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.TutorUsecase
	}
)

func NewTutorHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.TutorUsecase) TutorHandler {
	return &tutorHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /sessions
func (h *tutorHandler) StartSession(ctx *fiber.Ctx) error {
	var req entity.StartSessionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SESSION_START_FAILED, err, h.logger).Send(ctx)
	}

	session, err := h.usecase.StartSession(ctx.UserContext(), req)
	if err != nil {
		return sendError(ctx, domain.SESSION_START_FAILED, err, h.logger)
	}

	return response.NewCreated(domain.SESSION_START_SUCCESS, session).Send(ctx)
}

// GET /sessions/:session_id
func (h *tutorHandler) GetSession(ctx *fiber.Ctx) error {
	session, err := h.usecase.GetSession(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return sendError(ctx, domain.SESSION_GET_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SESSION_GET_SUCCESS, session, nil).Send(ctx)
}

// GET /students/:student_id/sessions
func (h *tutorHandler) ListSessions(ctx *fiber.Ctx) error {
	sessions, err := h.usecase.ListSessions(ctx.UserContext(), ctx.Params("student_id"))
	if err != nil {
		return sendError(ctx, domain.SESSION_LIST_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SESSION_LIST_SUCCESS, sessions, fiber.Map{"total": len(sessions)}).Send(ctx)
}

// POST /sessions/:session_id/messages
func (h *tutorHandler) SendMessage(ctx *fiber.Ctx) error {
	var req entity.SendMessageRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.TUTOR_SEND_FAILED, err, h.logger).Send(ctx)
	}

	turn, err := h.usecase.SendMessage(ctx.UserContext(), ctx.Params("session_id"), req)
	if err != nil {
		return sendError(ctx, domain.TUTOR_SEND_FAILED, err, h.logger)
	}

	return response.NewSuccess(domain.TUTOR_SEND_SUCCESS, turn, nil).Send(ctx)
}

// GET /sessions/:session_id/messages
func (h *tutorHandler) History(ctx *fiber.Ctx) error {
	messages, err := h.usecase.History(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return sendError(ctx, domain.TUTOR_HISTORY_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.TUTOR_HISTORY_SUCCESS, messages, fiber.Map{"total": len(messages)}).Send(ctx)
}

// GET /sessions/:session_id/analysis
func (h *tutorHandler) Analysis(ctx *fiber.Ctx) error {
	a, err := h.usecase.GetAnalysis(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return sendError(ctx, domain.SESSION_ANALYSIS_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SESSION_ANALYSIS_SUCCESS, a, nil).Send(ctx)
}

// POST /sessions/:session_id/end
func (h *tutorHandler) EndSession(ctx *fiber.Ctx) error {
	res, err := h.usecase.EndSession(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return sendError(ctx, domain.SESSION_END_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SESSION_END_SUCCESS, res, nil).Send(ctx)
}

// GET /sessions/:session_id/quiz
func (h *tutorHandler) QuizProgress(ctx *fiber.Ctx) error {
	progress, err := h.usecase.QuizProgress(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return sendError(ctx, domain.QUIZ_GET_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.QUIZ_GET_SUCCESS, progress, nil).Send(ctx)
}

// POST /sessions/:session_id/quiz/answers
func (h *tutorHandler) SubmitAnswer(ctx *fiber.Ctx) error {
	var req entity.SubmitAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUIZ_SUBMIT_ANSWER_FAILED, err, h.logger).Send(ctx)
	}
	req.Answer = strings.TrimSpace(req.Answer)

	res, err := h.usecase.SubmitQuizAnswer(ctx.UserContext(), ctx.Params("session_id"), req)
	if err != nil {
		return sendError(ctx, domain.QUIZ_SUBMIT_ANSWER_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.QUIZ_SUBMIT_ANSWER_SUCCESS, res, nil).Send(ctx)
}

// GET /students/:student_id/quiz-attempts
func (h *tutorHandler) ListQuizAttempts(ctx *fiber.Ctx) error {
	attempts, err := h.usecase.ListQuizAttempts(ctx.UserContext(), ctx.Params("student_id"))
	if err != nil {
		return sendError(ctx, domain.QUIZ_ATTEMPT_LIST_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.QUIZ_ATTEMPT_LIST_SUCCESS, attempts, fiber.Map{"total": len(attempts)}).Send(ctx)
}
