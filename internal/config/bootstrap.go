package config

import (
	"context"
	"fmt"

	"github.com/evandrarf/tutorly-be/internal/delivery/http/handler"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/middleware"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/repository"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/route"
	"github.com/evandrarf/tutorly-be/internal/delivery/http/usecase"
	"github.com/evandrarf/tutorly-be/internal/pkg/cache"
	"github.com/evandrarf/tutorly-be/internal/pkg/event"
	"github.com/evandrarf/tutorly-be/internal/pkg/llm"
	"github.com/evandrarf/tutorly-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator

	// optional overrides, mostly for tests
	LLM    llm.Provider
	Cache  cache.AnalysisCache
	Events event.Publisher
}

// Bootstrap wires repositories, usecases and handlers onto the API. The
// returned func waits for pending question bank writes, then releases redis
// and rabbitmq connections. Call it before closing the database.
func Bootstrap(config *BootstrapConfig) (func(), error) {
	closers := []func(){}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	provider := config.LLM
	if provider == nil {
		p, err := llm.NewProvider(context.Background(), config.Config, config.Log)
		if err != nil {
			return cleanup, fmt.Errorf("failed to create LLM provider: %w", err)
		}
		provider = p
	}

	analysisCache := config.Cache
	if analysisCache == nil {
		c, closeCache := cache.NewAnalysisCache(config.Config, config.Log)
		analysisCache = c
		closers = append(closers, func() {
			if err := closeCache(); err != nil {
				config.Log.WithError(err).Warn("Failed to close redis client")
			}
		})
	}

	events := config.Events
	if events == nil {
		p, err := event.NewPublisher(
			config.Config.GetString("rabbitmq.url"),
			config.Config.GetString("rabbitmq.exchange"),
			config.Log,
		)
		if err != nil {
			cleanup()
			return func() {}, err
		}
		events = p
		closers = append(closers, p.Close)
	}

	schoolRepo := repository.NewSchoolRepository(config.DB)
	sessionRepo := repository.NewTutorSessionRepository(config.DB)
	quizRepo := repository.NewQuizRepository(config.DB)

	tutorUsecase := usecase.NewTutorUsecase(usecase.TutorConfig{
		DB:             config.DB,
		LLM:            provider,
		PromptTemplate: config.Config.GetString("tutor.prompt_template"),
		Sessions:       sessionRepo,
		Schools:        schoolRepo,
		Quizzes:        quizRepo,
		Cache:          analysisCache,
		Events:         events,
		Log:            config.Log,
		Config:         config.Config,
	})
	closers = append(closers, tutorUsecase.Drain)

	studentUsecase := usecase.NewStudentUsecase(usecase.StudentConfig{
		DB:       config.DB,
		Schools:  schoolRepo,
		Sessions: sessionRepo,
		Quizzes:  quizRepo,
		Log:      config.Log,
	})
	approvalUsecase := usecase.NewApprovalUsecase(usecase.ApprovalConfig{
		DB:       config.DB,
		Schools:  schoolRepo,
		Students: studentUsecase,
		Events:   events,
		Log:      config.Log,
	})

	route.Setup(&route.RouteConfig{
		Api:             config.Api,
		Middleware:      mid,
		TutorHandler:    handler.NewTutorHandler(config.Validator, config.Log, tutorUsecase),
		StudentHandler:  handler.NewStudentHandler(config.Validator, config.Log, studentUsecase),
		ApprovalHandler: handler.NewApprovalHandler(config.Validator, config.Log, approvalUsecase),
	})

	config.Log.WithField("llm_model", provider.ModelID()).Info("Application bootstrapped")

	return cleanup, nil
}
