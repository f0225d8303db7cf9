package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware reads api.cors.origins as a comma separated string or a yaml
// list. Empty means any origin.
func (m *Middleware) CorsMiddleware() fiber.Handler {
	allowOrigins := "*"
	if m != nil && m.Config != nil {
		origins := m.Config.GetStringSlice("api.cors.origins")
		if len(origins) > 0 {
			allowOrigins = strings.Join(origins, ",")
		}
	}

	return cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Content-Length, Accept-Encoding, X-Request-ID",
		AllowMethods:  "GET, POST, OPTIONS",
		AllowOrigins:  allowOrigins,
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
	})
}
