package httpserver

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const bodyLimit = 64 * 1024

// KeyvalLogger receives one access log entry per request.
type KeyvalLogger interface {
	Log(keyvals ...any) error
}

type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Ready backs the readiness probe; nil means always ready.
	Ready func() bool
	// AccessLog is written per request when set.
	AccessLog KeyvalLogger
	// StackTrace makes the recover middleware print panic stacks.
	StackTrace bool
}

func InitFiberServer(opts Options) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    bodyLimit,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: opts.StackTrace,
	}))
	s.Use(cors.New())
	if opts.AccessLog != nil {
		s.Use(accessLog(opts.AccessLog))
	}

	ready := opts.Ready
	if ready == nil {
		ready = func() bool { return true }
	}
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
		ReadinessProbe: func(*fiber.Ctx) bool {
			return ready()
		},
	}))

	return s
}

func accessLog(l KeyvalLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// let the error handler set the status before it is logged
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		_ = l.Log(
			"msg", "http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
			"ip", c.IP(),
		)

		return nil
	}
}
