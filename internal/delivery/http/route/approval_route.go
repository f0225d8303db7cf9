package route

import (
	"github.com/evandrarf/tutorly-be/internal/delivery/http/handler"
	"github.com/gofiber/fiber/v2"
)

func SetupApprovalRoute(api *fiber.App, handler handler.ApprovalHandler) {
	api.Post("/approvals", handler.ApproveOrReject)
	api.Post("/schools/students", handler.SchoolStudents)
}
