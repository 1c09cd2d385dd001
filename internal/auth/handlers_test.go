package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestVerifyRoute(t *testing.T) {
	svc := NewService("secret")
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc)

	token, _ := svc.Issue(Identity{ExternalID: "ext-1", Username: "ada"}, time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status: %v", err)
	}

	var got Identity
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ExternalID != "ext-1" || got.Username != "ada" {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestVerifyRouteMissingToken(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret"))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized")
	}
}
