package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TomPannier1/Twist/internal/auth"
	"github.com/TomPannier1/Twist/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	id  string
	err error
}

func (r staticResolver) InternalID(context.Context, *auth.Identity) (string, error) {
	return r.id, r.err
}

func passthrough(c *fiber.Ctx) error { return c.Next() }

func TestListRoute(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT n.id`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "type", "user_id", "creator_id", "post_id", "comment_id", "created_at", "name", "username", "image"}).
			AddRow("n-1", "LIKE", "user-1", "user-2", "post-1", "", time.Now(), "Two", "two", ""))

	app := fiber.New()
	RegisterRoutes(app.Group("/notifications"), NewService(mock, nil), staticResolver{id: "user-1"}, passthrough)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []Notification
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, TypeLike, list[0].Type)
}

func TestListRouteWithoutUser(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/notifications"), NewService(nil, nil), staticResolver{}, passthrough)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListRouteUnsyncedUser(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/notifications"), NewService(nil, nil), staticResolver{err: user.ErrUserNotFound}, passthrough)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListRouteQueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT n.id`).WithArgs("user-1").WillReturnError(errNotification)

	app := fiber.New()
	RegisterRoutes(app.Group("/notifications"), NewService(mock, nil), staticResolver{id: "user-1"}, passthrough)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
