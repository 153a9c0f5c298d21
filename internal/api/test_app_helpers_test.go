package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/dailybrew/internal/db"
	"github.com/terraincognita07/dailybrew/internal/events"
	"github.com/terraincognita07/dailybrew/internal/i18n"
	"github.com/terraincognita07/dailybrew/internal/services"
)

const (
	testSecretKey = "0123456789abcdef0123456789abcdef"
	testPassword  = "StrongPass1"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type testApp struct {
	app     *fiber.App
	handler *Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "dailybrew.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bus := events.NewBus()
	if err := db.RegisterChangeNotifier(database, bus); err != nil {
		t.Fatalf("register change notifier: %v", err)
	}

	hash, err := services.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := db.SeedDefaults(context.Background(), database, db.SeedOptions{PasswordHash: hash}); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}

	repositories := db.NewRepositories(database)
	aggregation := services.NewAggregationService(repositories.Intakes, time.UTC)
	limits := services.NewLimitService(repositories.Limits)
	intakes := services.NewIntakeService(repositories.Intakes, repositories.Drinks)
	history := services.NewHistoryService(aggregation, repositories.Drinks)

	manager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("i18n manager: %v", err)
	}

	handler, err := NewHandler(Services{
		Users:   services.NewUserService(repositories.Users),
		Drinks:  services.NewDrinkService(repositories.Drinks, db.IsForeignKeyViolation),
		Intakes: intakes,
		Limits:  limits,
		Status:  services.NewStatusService(aggregation, limits),
		History: history,
		Export:  services.NewExportService(repositories.Intakes, repositories.Drinks),
		Live:    services.NewLiveService(bus, aggregation, limits, history, intakes),
	}, Options{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		I18n:      manager,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler}
}

func (fixture *testApp) do(t *testing.T, method string, path string, authCookie string, body any, headers ...string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	response, err := fixture.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func (fixture *testApp) login(t *testing.T) string {
	t.Helper()

	response := fixture.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    db.DefaultUserEmail,
		"password": testPassword,
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login expected status 200, got %d", response.StatusCode)
	}
	value := responseCookieValue(response.Cookies(), authCookieName)
	if value == "" {
		t.Fatal("login response is missing the auth cookie")
	}
	return authCookieName + "=" + value
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, strings.TrimSpace(string(body)))
	}
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var value T
	if err := json.NewDecoder(response.Body).Decode(&value); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return value
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeJSON[map[string]string](t, response)["error"]
}
