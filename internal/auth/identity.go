package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Identity is the caller as known to the external authentication provider.
type Identity struct {
	ExternalID string `json:"external_id"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

// UserResolver maps a caller identity to the internal user id.
// An empty id with a nil error means there is no session.
type UserResolver interface {
	InternalID(ctx context.Context, ident *Identity) (string, error)
}

// IdentityFrom returns the identity stored by the middleware, or nil when the
// request carries no session.
func IdentityFrom(c *fiber.Ctx) *Identity {
	ident, _ := c.Locals(identityKey).(*Identity)
	return ident
}

// SetIdentity attaches ident to the request.
func SetIdentity(c *fiber.Ctx, ident *Identity) {
	c.Locals(identityKey, ident)
}
