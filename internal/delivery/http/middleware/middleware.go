package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type MiddlewareConfig struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

type Middleware struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

func NewMiddleware(c *MiddlewareConfig) *Middleware {
	if c == nil {
		return &Middleware{}
	}

	return &Middleware{
		Log:    c.Log,
		Config: c.Config,
	}
}

func (m *Middleware) RequestID() fiber.Handler {
	return requestid.New()
}

// RequestLogger writes one access line per request to the application log
// output.
func (m *Middleware) RequestLogger() fiber.Handler {
	cfg := logger.Config{
		Format:     "[${ip}]:${port} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}
	if m != nil && m.Log != nil {
		cfg.Output = m.Log.Out
	}
	return logger.New(cfg)
}

func (m *Middleware) Recover() fiber.Handler {
	return recover.New(recover.Config{EnableStackTrace: m != nil && m.Config != nil && m.Config.GetBool("api.debug")})
}
