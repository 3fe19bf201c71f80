package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopdb/internal/types"
	"github.com/localnerve/shopdb/internal/utils"
	"github.com/sirupsen/logrus"
)

// NewErrorHandler returns the central fiber error handler. Every error gets a
// status: typed errors carry their own, fiber errors theirs, anything else 500.
// Stack traces are only sent outside production.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, "http", "")
		}

		ce := types.AsCustomError(err)
		if ce.Code >= fiber.StatusInternalServerError {
			logrus.WithFields(logrus.Fields{
				"method": c.Method(),
				"url":    c.OriginalURL(),
				"type":   ce.Type,
			}).WithError(err).Error(ce.StackTrace())
		}

		stack := ""
		if !production {
			stack = ce.StackTrace()
		}
		return utils.ErrorResponse(c, ce.Code, ce.Message, ce.Type, stack)
	}
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}
