package handler

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/service"
	"go-retail-backoffice/pkg/token"
)

// stubAuthService drives the handler without a real credential store.
type stubAuthService struct {
	users map[string]string // username -> password
}

func (s *stubAuthService) Register(username, email, password string, isAdmin bool) (*model.User, error) {
	if _, ok := s.users[username]; ok {
		return nil, model.ErrUsernameTaken
	}
	s.users[username] = password
	return &model.User{Username: username, Email: email, IsAdmin: isAdmin}, nil
}

func (s *stubAuthService) Login(username, password string) (*service.TokenResponse, error) {
	if stored, ok := s.users[username]; !ok || stored != password {
		return nil, model.ErrInvalidCredentials
	}
	return &service.TokenResponse{AccessToken: "stub-token-" + username, TokenType: "bearer"}, nil
}

func (s *stubAuthService) Refresh(tokenString string) (*service.TokenResponse, error) {
	if !strings.HasPrefix(tokenString, "stub-token-") {
		return nil, token.ErrInvalidToken
	}
	return &service.TokenResponse{AccessToken: tokenString, TokenType: "bearer"}, nil
}

func setupAuthApp() *fiber.App {
	h := NewAuthHandler(&stubAuthService{users: map[string]string{"admin": "admin123"}})
	app := fiber.New()
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/refresh-token", h.Refresh)
	return app
}

func TestRegisterEndpoint(t *testing.T) {
	app := setupAuthApp()

	body := `{"username":"maria","email":"maria@x.com","password":"senha123"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestRegisterEndpoint_UsernameTaken(t *testing.T) {
	app := setupAuthApp()

	body := `{"username":"admin","email":"other@x.com","password":"senha123"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLoginEndpoint_FormEncoded(t *testing.T) {
	app := setupAuthApp()

	form := url.Values{"username": {"admin"}, "password": {"admin123"}}
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body service.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "bearer", body.TokenType)
	assert.NotEmpty(t, body.AccessToken)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	app := setupAuthApp()

	form := url.Values{"username": {"admin"}, "password": {"nope"}}
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRefreshEndpoint(t *testing.T) {
	app := setupAuthApp()

	req := httptest.NewRequest("POST", "/auth/refresh-token", nil)
	req.Header.Set("Authorization", "Bearer stub-token-admin")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Missing and malformed tokens both come back 401.
	req = httptest.NewRequest("POST", "/auth/refresh-token", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("POST", "/auth/refresh-token", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
