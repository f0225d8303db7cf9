package route

import (
	"github.com/evandrarf/tutorly-be/internal/delivery/http/handler"
	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoute(api *fiber.App, students handler.StudentHandler, tutor handler.TutorHandler) {
	router := api.Group("/students")
	{
		router.Post("/", students.Register)
		router.Get("/:student_id", students.Get)
		router.Get("/:student_id/report", students.Report)
		router.Get("/:student_id/sessions", tutor.ListSessions)
		router.Get("/:student_id/quiz-attempts", tutor.ListQuizAttempts)
	}
}
