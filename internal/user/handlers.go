package user

import (
	"log/slog"

	"github.com/TomPannier1/Twist/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, sessionMiddleware fiber.Handler) {
	r.Post("/sync", sessionMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(svc.Sync(c.Context(), auth.IdentityFrom(c)))
	})

	r.Get("/suggestions", sessionMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(svc.Suggestions(c.Context(), auth.IdentityFrom(c)))
	})

	r.Get("/:externalID", func(c *fiber.Ctx) error {
		profile, err := svc.GetByExternalID(c.Context(), c.Params("externalID"))
		if err != nil {
			slog.Error("get user", "external_id", c.Params("externalID"), "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
		}
		return c.JSON(profile)
	})
}
