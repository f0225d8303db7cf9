package route

import (
	"github.com/evandrarf/tutorly-be/internal/delivery/http/handler"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/middleware"
	"github.com/evandrarf/tutorly-be/internal/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	Api             *fiber.App
	Middleware      *middleware.Middleware
	TutorHandler    handler.TutorHandler
	StudentHandler  handler.StudentHandler
	ApprovalHandler handler.ApprovalHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(c.Middleware.Recover())
	c.Api.Use(c.Middleware.RequestID())
	c.Api.Use(c.Middleware.RequestLogger())
	c.Api.Use(c.Middleware.CorsMiddleware())

	c.Api.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	c.Api.Get("/metrics", metrics.Handler())

	SetupStudentRoute(c.Api, c.StudentHandler, c.TutorHandler)
	SetupTutorRoute(c.Api, c.TutorHandler)
	SetupApprovalRoute(c.Api, c.ApprovalHandler)
}
