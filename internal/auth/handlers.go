package auth

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/jwt/verify", JWTMiddleware(svc), func(c *fiber.Ctx) error {
		return c.JSON(IdentityFrom(c))
	})
}
