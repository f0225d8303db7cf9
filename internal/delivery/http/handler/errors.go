package handler

import (
	"errors"

	"github.com/evandrarf/tutorly-be/internal/delivery/http/usecase"
	"github.com/evandrarf/tutorly-be/internal/pkg/response"
	"github.com/evandrarf/tutorly-be/internal/quiz"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidAction),
		errors.Is(err, quiz.ErrBlankAnswer):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrStudentNotApproved):
		return fiber.StatusForbidden
	case errors.Is(err, usecase.ErrSchoolNotFound),
		errors.Is(err, usecase.ErrStudentNotFound),
		errors.Is(err, usecase.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrSessionNotActive),
		errors.Is(err, usecase.ErrSessionEnded),
		errors.Is(err, usecase.ErrNoActiveQuiz),
		errors.Is(err, quiz.ErrQuizComplete):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrTutorUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// sendError maps a usecase error to its status code. Internal errors are
// logged with detail and hidden from the client.
func sendError(ctx *fiber.Ctx, msg string, err error, log *logrus.Logger) error {
	code := statusFor(err)

	text := err.Error()
	switch {
	case code == fiber.StatusInternalServerError:
		text = "Internal Server Error"
		fallthrough
	case code >= fiber.StatusInternalServerError:
		log.WithError(err).WithField("path", ctx.Path()).Error(msg)
	}
	if errors.Is(err, usecase.ErrTutorUnavailable) {
		text = usecase.ErrTutorUnavailable.Error()
	}

	return response.NewFailed(msg, fiber.NewError(code, text), nil).Send(ctx)
}
