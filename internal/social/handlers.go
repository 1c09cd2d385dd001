package social

import (
	"errors"
	"log/slog"

	"github.com/TomPannier1/Twist/internal/auth"
	"github.com/TomPannier1/Twist/internal/shared/envelope"
	"github.com/TomPannier1/Twist/internal/user"

	"github.com/gofiber/fiber/v2"
)

var (
	errNoSession   = errors.New("no session")
	errInvalidBody = errors.New("invalid request body")
)

type postRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

type commentRequest struct {
	Content string `json:"content"`
}

func RegisterRoutes(r fiber.Router, svc *Service, users auth.UserResolver, sessionMiddleware fiber.Handler) {
	r.Get("/posts", func(c *fiber.Ctx) error {
		posts, err := svc.ListPosts(c.Context())
		if err != nil {
			slog.Error("list posts", "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch posts")
		}
		return c.JSON(posts)
	})

	r.Post("/posts", sessionMiddleware, withCaller(users, "create post", func(c *fiber.Ctx, actorID string) error {
		var req postRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, "create post", errInvalidBody)
		}
		post, err := svc.CreatePost(c.Context(), actorID, req.Content, req.Image)
		if err != nil {
			return fail(c, "create post", err)
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.OK(post))
	}))

	r.Delete("/posts/:id", sessionMiddleware, withCaller(users, "delete post", func(c *fiber.Ctx, actorID string) error {
		if err := svc.DeletePost(c.Context(), actorID, c.Params("id")); err != nil {
			return fail(c, "delete post", err)
		}
		return c.JSON(envelope.OK(nil))
	}))

	r.Post("/posts/:id/like", sessionMiddleware, withCaller(users, "toggle like", func(c *fiber.Ctx, actorID string) error {
		liked, err := svc.ToggleLike(c.Context(), c.Params("id"), actorID)
		if err != nil {
			return fail(c, "toggle like", err)
		}
		return c.JSON(envelope.OK(fiber.Map{"liked": liked}))
	}))

	r.Post("/posts/:id/comments", sessionMiddleware, withCaller(users, "create comment", func(c *fiber.Ctx, actorID string) error {
		var req commentRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, "create comment", errInvalidBody)
		}
		comment, err := svc.CreateComment(c.Context(), c.Params("id"), actorID, req.Content)
		if err != nil {
			return fail(c, "create comment", err)
		}
		return c.Status(fiber.StatusCreated).JSON(envelope.OK(comment))
	}))

	r.Post("/users/:id/follow", sessionMiddleware, withCaller(users, "follow user", func(c *fiber.Ctx, actorID string) error {
		following, err := svc.ToggleFollow(c.Context(), actorID, c.Params("id"))
		if err != nil {
			return fail(c, "follow user", err)
		}
		return c.JSON(envelope.OK(fiber.Map{"following": following}))
	}))
}

// withCaller resolves the caller's internal id before running next.
func withCaller(users auth.UserResolver, action string, next func(c *fiber.Ctx, actorID string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := users.InternalID(c.Context(), auth.IdentityFrom(c))
		if err == nil && actorID == "" {
			err = errNoSession
		}
		if err != nil {
			return fail(c, action, err)
		}
		return next(c, actorID)
	}
}

// fail logs err and answers with the fixed failure envelope for action.
func fail(c *fiber.Ctx, action string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("failed to "+action, "error", err)
	} else {
		slog.Info("rejected "+action, "error", err)
	}
	return c.Status(status).JSON(envelope.Fail("Failed to " + action))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errNoSession):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrContentRequired), errors.Is(err, ErrSelfFollow), errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotPostAuthor):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
