package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/approvals-api/internal/bridge"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/service"
)

const actorKey = "actor"

func GetActor(c *fiber.Ctx) models.Actor {
	actor, _ := c.Locals(actorKey).(models.Actor)
	return actor
}

func SetActor(c *fiber.Ctx, actor models.Actor) {
	c.Locals(actorKey, actor)
}

// respondError maps service and bridge errors onto HTTP responses. Upstream
// rejections are shown verbatim; anything else unexpected gets a generic
// message.
func respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	var berr *bridge.Error

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrMutationInFlight), errors.Is(err, service.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &berr):
		if msg, ok := bridge.UserMessage(err); ok {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": msg})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Unable to reach the automation service"})
	}

	slog.Error(err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
