package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorly_chat_turns_total",
			Help: "Total number of tutoring chat turns",
		},
		[]string{"status"}, // status: success/fallback/failure
	)

	QuizCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorly_quiz_completed_total",
			Help: "Total number of completed quizzes",
		},
		[]string{"understanding"},
	)

	Approvals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorly_approval_requests_total",
			Help: "Total number of student approval requests",
		},
		[]string{"action", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tutorly_llm_request_duration_seconds",
			Help:    "Time spent waiting for the language model",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "status"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tutorly_active_sessions_current",
			Help: "Tutor sessions started and not yet ended by this process",
		},
	)
)

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
