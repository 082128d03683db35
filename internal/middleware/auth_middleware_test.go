package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/pkg/token"
)

type stubUserRepo struct {
	byUsername map[string]*model.User
}

func (r *stubUserRepo) Create(user *model.User) error {
	r.byUsername[user.Username] = user
	return nil
}

func (r *stubUserRepo) FindByUsername(username string) (*model.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.byUsername {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(username, hashedPassword string) error {
	return nil
}

func setupApp(t *testing.T) (*fiber.App, *token.Manager) {
	t.Helper()
	repo := &stubUserRepo{byUsername: map[string]*model.User{
		"maria": {Username: "maria", Email: "maria@x.com"},
		"admin": {Username: "admin", Email: "admin@x.com", IsAdmin: true},
	}}
	issuer := token.NewManager("test-secret", time.Minute)

	app := fiber.New()
	app.Get("/protected", RequireAuth(issuer, repo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": c.Locals("username")})
	})
	app.Delete("/admin-only", RequireAuth(issuer, repo), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ok"})
	})
	return app, issuer
}

func TestRequireAuth_MissingToken(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	app, issuer := setupApp(t)
	signed, _ := issuer.Issue("maria")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", signed) // no "Bearer " prefix
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuth_UnknownSubject(t *testing.T) {
	app, issuer := setupApp(t)
	signed, err := issuer.Issue("ghost")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode, "tokens for deleted users stop working")
}

func TestRequireAuth_Valid(t *testing.T) {
	app, issuer := setupApp(t)
	signed, err := issuer.Issue("maria")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app, issuer := setupApp(t)

	userToken, err := issuer.Issue("maria")
	require.NoError(t, err)
	adminToken, err := issuer.Issue("admin")
	require.NoError(t, err)

	req := httptest.NewRequest("DELETE", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("DELETE", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
