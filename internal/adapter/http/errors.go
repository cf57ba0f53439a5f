package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"applica-cv/internal/domain"
)

// ErrorHandler maps service errors onto status codes with a {"error": ...} body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, body := classify(err)
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("request failed")
	}
	return c.Status(code).JSON(body)
}

func classify(err error) (int, fiber.Map) {
	var (
		fe  *fiber.Error
		ute *domain.UnknownTemplateError
		ve  *domain.ValidationError
		re  *domain.RenderError
		se  *domain.StorageError
		pe  *domain.PersistenceError
	)
	switch {
	case errors.As(err, &fe):
		return fe.Code, fiber.Map{"error": fe.Message}
	case errors.As(err, &ute):
		return fiber.StatusBadRequest, fiber.Map{"error": ute.Error()}
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, fiber.Map{"error": "invalid profile", "problems": ve.Problems}
	case errors.Is(err, domain.ErrProfileNotFound):
		return fiber.StatusNotFound, fiber.Map{"error": domain.ErrProfileNotFound.Error()}
	case errors.As(err, &re):
		return fiber.StatusInternalServerError, fiber.Map{"error": "failed to generate CV"}
	case errors.As(err, &se):
		return fiber.StatusBadGateway, fiber.Map{"error": "failed to upload CV"}
	case errors.As(err, &pe):
		return fiber.StatusInternalServerError, fiber.Map{"error": "failed to " + pe.Op}
	default:
		return fiber.StatusInternalServerError, fiber.Map{"error": "internal error"}
	}
}
