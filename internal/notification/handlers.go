package notification

import (
	"errors"
	"log/slog"

	"github.com/TomPannier1/Twist/internal/auth"
	"github.com/TomPannier1/Twist/internal/user"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, users auth.UserResolver, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, err := users.InternalID(c.Context(), auth.IdentityFrom(c))
		if errors.Is(err, user.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Failed to fetch notifications")
		}
		if err != nil || userID == "" {
			if err != nil {
				slog.Warn("resolve caller", "error", err)
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Failed to fetch notifications")
		}

		list, err := svc.List(c.Context(), userID)
		if err != nil {
			slog.Error("list notifications", "user_id", userID, "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch notifications")
		}
		return c.JSON(list)
	})
}
