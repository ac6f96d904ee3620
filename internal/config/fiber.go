package config

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:       "Lead Receptionist",
			BodyLimit:     1 * 1024 * 1024,
			CaseSensitive: true,
			JSONEncoder:   jsoniter.Marshal,
			JSONDecoder:   jsoniter.Unmarshal,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				if e, ok := err.(*fiber.Error); ok {
					code = e.Code
				}
				logger.WithField("path", c.Path()).WithError(err).Warn("Unhandled fiber error")
				return c.Status(code).JSON(fiber.Map{"error": err.Error()})
			},
		})

	return app
}
