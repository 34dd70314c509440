package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/logistic-api/pkg/metrics"
)

// RequestID asigna X-Request-ID (respeta el que envía el cliente).
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// RequestObserver adjunta a la petición un sublogger con request_id (recuperable con zerolog.Ctx
// sobre c.UserContext()), registra cada petición y alimenta las métricas HTTP.
func RequestObserver(base zerolog.Logger, m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		reqLog := base.With().Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(started)
		m.Observe(c.Method(), c.Route().Path, status, elapsed)

		event := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			event = reqLog.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", elapsed.Milliseconds()).
			Msg("request")
		return nil
	}
}
