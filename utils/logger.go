package utils

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggerConfig controls the process logger.
type LoggerConfig struct {
	Output *os.File
}

// InitLogger initializes the shared logger.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return log.New(cfg.Output, "[Gestion Ventas] ", log.LstdFlags|log.LUTC)
}

// LoggingMiddleware logs every request with status, latency and client info.
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.Printf("%s %s %s %d %s %q %v",
			c.IP(),
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			time.Since(start),
			c.Get("User-Agent"),
			err,
		)

		return err
	}
}
