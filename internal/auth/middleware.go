package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SessionMiddleware attaches the caller identity when a bearer token is
// present. Requests without a token pass through anonymously; requests with
// a bad token are rejected.
func SessionMiddleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}
		ident, err := svc.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		SetIdentity(c, &ident)
		return c.Next()
	}
}

// JWTMiddleware requires a valid token. Browsers cannot set headers on a
// websocket upgrade, so the access_token query parameter is accepted too.
func JWTMiddleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Query("access_token")
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		ident, err := svc.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		SetIdentity(c, &ident)
		return c.Next()
	}
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
