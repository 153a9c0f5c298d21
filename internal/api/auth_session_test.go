package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/dailybrew/internal/db"
	"github.com/terraincognita07/dailybrew/internal/models"
)

func TestHealthIsPublic(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	response := fixture.do(t, http.MethodGet, "/healthz", "", nil)
	expectStatus(t, response, http.StatusOK)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	for _, path := range []string{"/api/me", "/api/status", "/api/drinks", "/api/stream"} {
		response := fixture.do(t, http.MethodGet, path, "", nil)
		expectStatus(t, response, http.StatusUnauthorized)
		if got := readAPIError(t, response); got != "unauthorized" {
			t.Fatalf("GET %s expected unauthorized error, got %q", path, got)
		}
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	response := fixture.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    db.DefaultUserEmail,
		"password": "WrongPass1",
	})
	expectStatus(t, response, http.StatusUnauthorized)
	if got := readAPIError(t, response); got != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %q", got)
	}
}

func TestLoginThrottlesRepeatedFailures(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	body := map[string]any{"email": db.DefaultUserEmail, "password": "WrongPass1"}
	for attempt := 0; attempt < loginAttemptLimit; attempt++ {
		expectStatus(t, fixture.do(t, http.MethodPost, "/api/auth/login", "", body), http.StatusUnauthorized)
	}

	body["password"] = testPassword
	response := fixture.do(t, http.MethodPost, "/api/auth/login", "", body)
	expectStatus(t, response, http.StatusTooManyRequests)
}

func TestLoginIssuesCookieAndBearerToken(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	response := fixture.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "  USER@Example.com ",
		"password": testPassword,
	})
	expectStatus(t, response, http.StatusOK)

	payload := decodeJSON[struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}](t, response)
	if payload.Token == "" {
		t.Fatal("expected token in login response")
	}
	if payload.User.Email != db.DefaultUserEmail || payload.User.Name != db.DefaultUserName {
		t.Fatalf("unexpected user payload: %#v", payload.User)
	}

	me := fixture.do(t, http.MethodGet, "/api/me", "", nil, "Authorization", "Bearer "+payload.Token)
	expectStatus(t, me, http.StatusOK)
	if got := decodeJSON[userResponse](t, me); got.ID != payload.User.ID {
		t.Fatalf("expected /api/me for user %d, got %d", payload.User.ID, got.ID)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	authCookie := fixture.login(t)

	response := fixture.do(t, http.MethodPost, "/api/auth/logout", authCookie, nil)
	expectStatus(t, response, http.StatusOK)
	if value := responseCookieValue(response.Cookies(), authCookieName); value != "" {
		t.Fatalf("expected cleared auth cookie, got %q", value)
	}
}

func TestRejectsTokenSignedWithAnotherKey(t *testing.T) {
	t.Parallel()

	fixture := newTestApp(t)
	other := &Handler{secretKey: []byte("another-secret-another-secret-xx"), now: fixture.handler.now}
	token, err := other.buildToken(&models.User{ID: 1}, defaultAuthTokenTTL)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	response := fixture.do(t, http.MethodGet, "/api/me", "", nil, "Authorization", "Bearer "+token)
	expectStatus(t, response, http.StatusUnauthorized)
}
