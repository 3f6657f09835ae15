package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/application/policy"
	"github.com/vtcwoerden/materiaal-api/internal/application/usecase"
)

// RequireView gates the browse routes on the access policy: logged-in users
// always pass, anonymous visitors only while the public_access setting is on.
// Must run after OptionalAuthMiddleware.
func RequireView(settings *usecase.SettingsUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := policy.New(SessionFrom(c), settings.PublicAccess())
		if !p.CanView() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "login required to browse the inventory"})
		}
		return c.Next()
	}
}
