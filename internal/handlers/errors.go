package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/trentd187/golf-scoring/internal/repository"
	"github.com/trentd187/golf-scoring/internal/service"
)

// fail maps service errors onto a JSON error response. Unexpected errors are returned
// to fiber so the app's error handler logs them and answers 500.
func fail(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, service.ErrInvalid), errors.Is(err, service.ErrInvalidHole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound})
	}
	return err
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// uuidParam parses a route parameter; ok is false once the 400 has been written.
func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false, badRequest(c, "invalid "+name)
	}
	return id, true, nil
}
