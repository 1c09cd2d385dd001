package stream

import (
	"log/slog"

	"github.com/TomPannier1/Twist/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const userIDKey = "user_id"

func RegisterRoutes(r fiber.Router, hub *Hub, users auth.UserResolver, authMiddleware fiber.Handler) {
	r.Get("/ws", authMiddleware, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		userID, err := users.InternalID(c.Context(), auth.IdentityFrom(c))
		if err != nil || userID == "" {
			if err != nil {
				slog.Warn("resolve stream caller", "error", err)
			}
			return fiber.ErrUnauthorized
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}, websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals(userIDKey).(string)
		client := hub.Register(userID)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(client)
		<-done
	}))
}
