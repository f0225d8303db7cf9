package route

import (
	"github.com/evandrarf/tutorly-be/internal/delivery/http/handler"
	"github.com/gofiber/fiber/v2"
)

func SetupTutorRoute(api *fiber.App, handler handler.TutorHandler) {
	router := api.Group("/sessions")
	{
		router.Post("/", handler.StartSession)
		router.Get("/:session_id", handler.GetSession)
		router.Post("/:session_id/messages", handler.SendMessage)
		router.Get("/:session_id/messages", handler.History)
		router.Get("/:session_id/analysis", handler.Analysis)
		router.Post("/:session_id/end", handler.EndSession)
	}

	quizRouter := router.Group("/:session_id/quiz")
	{
		quizRouter.Get("/", handler.QuizProgress)
		quizRouter.Post("/answers", handler.SubmitAnswer)
	}
}
