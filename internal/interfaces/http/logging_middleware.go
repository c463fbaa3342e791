package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/pkg/logger"
)

const localLogger = "logger"

// RequestLogger registra cada petición con su request id y deja un sublogger en c.Locals.
// Debe ir después de requestid.New() para leer el header X-Request-ID.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).Logger()
		c.Locals(localLogger, &reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("company_id", GetCompanyID(c)).
			Msg("request")
		return err
	}
}
