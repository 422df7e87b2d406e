package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"planboard/internal/config"
)

func newTestApp(t *testing.T, authRequired bool) *App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{AppName: "planboard-test", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "app.db"),
		},
		Auth: config.AuthConfig{
			BcryptCost:   bcrypt.MinCost,
			JWTSecret:    "test-secret",
			JWTTTL:       time.Hour,
			AuthRequired: authRequired,
		},
		Cache: config.CacheConfig{ListTTL: time.Second},
	}

	a, cleanup, err := Bootstrap(context.Background(), cfg, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return a
}

func doJSON(t *testing.T, a *App, method, path string, body any, headers ...string) (int, map[string]any) {
	t.Helper()
	status, raw := doRaw(t, a, method, path, body, headers...)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return status, out
}

func doJSONList(t *testing.T, a *App, path string, headers ...string) (int, []map[string]any) {
	t.Helper()
	status, raw := doRaw(t, a, http.MethodGet, path, nil, headers...)

	var out []map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return status, out
}

func doRaw(t *testing.T, a *App, method, path string, body any, headers ...string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestAccessLogRecordsFailureStatus(t *testing.T) {
	var logBuf bytes.Buffer

	cfg := config.Config{
		App: config.AppConfig{AppName: "planboard-test", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "app.db"),
		},
		Auth: config.AuthConfig{
			BcryptCost: bcrypt.MinCost,
			JWTSecret:  "test-secret",
			JWTTTL:     time.Hour,
		},
		Cache: config.CacheConfig{ListTTL: time.Second},
	}

	a, cleanup, err := Bootstrap(context.Background(), cfg, log.New(&logBuf, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	status, body := doJSON(t, a, http.MethodPost, "/ideas", map[string]any{"title": "X"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "user_email is required.", body["error"])

	require.Contains(t, logBuf.String(), "status=400")
	require.NotContains(t, logBuf.String(), "status=200")
}

func TestSignupAndLoginFlow(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPost, "/signup", map[string]any{
		"email": "A@B.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, float64(1), body["id"])
	require.Equal(t, "a@b.com", body["email"])
	require.NotEmpty(t, body["message"])

	// Same identity modulo case and whitespace.
	status, body = doJSON(t, a, http.MethodPost, "/signup", map[string]any{
		"email": "  a@B.COM ", "password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email already registered.", body["error"])

	status, body = doJSON(t, a, http.MethodPost, "/signup", map[string]any{
		"email": "c@d.com", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Password must be at least 6 characters.", body["error"])

	status, body = doJSON(t, a, http.MethodPost, "/login", map[string]any{
		"email": "a@b.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "a@b.com", body["email"])
	require.NotEmpty(t, body["token"])

	status, body = doJSON(t, a, http.MethodPost, "/login", map[string]any{
		"email": "a@b.com", "password": "wrongpass",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid credentials.", body["error"])

	status, body = doJSON(t, a, http.MethodPost, "/login", map[string]any{
		"email": "nobody@b.com", "password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid credentials.", body["error"])
}

func TestIdeaCreateAppliesDefaults(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPost, "/ideas", map[string]any{
		"user_email": "a@b.com", "title": "X", "content": "Y",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "general", body["category"])
	require.NotEmpty(t, body["created_date"])
	require.Equal(t, float64(1), body["id"])

	status, list := doJSONList(t, a, "/ideas/a@b.com")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	require.Equal(t, "X", list[0]["title"])
	require.Equal(t, "Y", list[0]["content"])
	require.Equal(t, "general", list[0]["category"])
	require.Equal(t, body["created_date"], list[0]["created_date"])
}

func TestIdeaCreateRequiresOwnerEmail(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPost, "/ideas", map[string]any{"title": "X"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "user_email is required.", body["error"])
}

func TestDeadlinesListAscendingByDueDate(t *testing.T) {
	a := newTestApp(t, false)

	status, _ := doJSON(t, a, http.MethodPost, "/deadlines", map[string]any{
		"user_email": "a@b.com", "title": "later", "due_date": "2026-12-01",
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, a, http.MethodPost, "/deadlines", map[string]any{
		"user_email": "a@b.com", "title": "sooner", "due_date": "2026-09-01",
	})
	require.Equal(t, http.StatusCreated, status)

	status, list := doJSONList(t, a, "/deadlines/a@b.com")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 2)
	require.Equal(t, "sooner", list[0]["title"])
	require.Equal(t, "later", list[1]["title"])
}

func TestUpdateMissingIDIsNotAnError(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPut, "/ideas/999", map[string]any{
		"user_email": "a@b.com", "title": "X",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), body["changes"])
}

func TestDeleteIsIdempotent(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPost, "/notes", map[string]any{
		"user_email": "a@b.com", "title": "n1",
	})
	require.Equal(t, http.StatusCreated, status)
	id := int64(body["id"].(float64))

	status, body = doJSON(t, a, http.MethodDelete, "/notes/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["changes"])

	status, body = doJSON(t, a, http.MethodDelete, "/notes/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), body["changes"])
}

func TestCalendarEventSurfacesStayInSync(t *testing.T) {
	a := newTestApp(t, false)

	// Canonical surface speaks short names.
	status, body := doJSON(t, a, http.MethodPost, "/events", map[string]any{
		"user_email": "a@b.com", "title": "standup",
		"date": "2026-09-01", "time": "09:30", "repeat": true,
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "2026-09-01", body["date"])
	require.Equal(t, "09:30", body["time"])
	require.Equal(t, float64(1), body["repeat"])

	status, list := doJSONList(t, a, "/events/a@b.com")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	require.Equal(t, "2026-09-01", list[0]["date"])
	require.Equal(t, "09:30", list[0]["time"])
	require.Equal(t, float64(1), list[0]["repeat"])

	// The legacy surface reads the same table under internal names.
	status, legacy := doJSONList(t, a, "/calendar_events/a@b.com")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, legacy, 1)
	require.Equal(t, "2026-09-01", legacy[0]["event_date"])
	require.Equal(t, "09:30", legacy[0]["event_time"])
	require.Equal(t, float64(1), legacy[0]["weekly_repeat"])

	// A legacy write is visible through the canonical view.
	status, _ = doJSON(t, a, http.MethodPost, "/calendar_events", map[string]any{
		"user_email": "a@b.com", "title": "review",
		"event_date": "2026-09-02", "event_time": "14:00",
	})
	require.Equal(t, http.StatusCreated, status)

	status, list = doJSONList(t, a, "/events/a@b.com")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 2)
	require.Equal(t, "standup", list[0]["title"])
	require.Equal(t, "review", list[1]["title"])
	require.Equal(t, float64(0), list[1]["repeat"])
}

func TestProjectCreateValidationAndColleagues(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPost, "/projects", map[string]any{
		"user_email": "a@b.com",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "name is required.", body["error"])

	status, body = doJSON(t, a, http.MethodPost, "/projects", map[string]any{
		"name": "p1", "user_email": "a@b.com",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "[]", body["colleagues"])

	status, body = doJSON(t, a, http.MethodPost, "/projects", map[string]any{
		"name": "p2", "user_email": "a@b.com",
		"colleagues": []string{"x@y.com", "z@w.com"},
	})
	require.Equal(t, http.StatusCreated, status)

	var emails []string
	require.NoError(t, json.Unmarshal([]byte(body["colleagues"].(string)), &emails))
	require.Equal(t, []string{"x@y.com", "z@w.com"}, emails)
}

func TestProjectDescriptionRoundTripsCamelCase(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPost, "/projects", map[string]any{
		"name": "p1", "user_email": "a@b.com",
	})
	require.Equal(t, http.StatusCreated, status)
	id := itoa(int64(body["id"].(float64)))

	status, body = doJSON(t, a, http.MethodPut, "/projects/"+id+"/description", map[string]any{
		"objectives":        "ship the thing",
		"communicationPlan": "weekly email",
		"successMetrics":    "zero regressions",
		"unknownField":      "ignored",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["changes"])

	status, body = doJSON(t, a, http.MethodGet, "/projects/"+id+"/description", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ship the thing", body["objectives"])
	require.Equal(t, "weekly email", body["communicationPlan"])
	require.Equal(t, "zero regressions", body["successMetrics"])
	require.Equal(t, "", body["timeline"])
	require.NotContains(t, body, "unknownField")

	status, body = doJSON(t, a, http.MethodGet, "/projects/999/description", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Project not found.", body["error"])
}

func TestCareerAndFutureAliases(t *testing.T) {
	a := newTestApp(t, false)

	status, _ := doJSON(t, a, http.MethodPost, "/career_goals", map[string]any{
		"user_email": "a@b.com", "title": "principal",
	})
	require.Equal(t, http.StatusCreated, status)

	_, canonical := doJSONList(t, a, "/career_goals/a@b.com")
	_, alias := doJSONList(t, a, "/career/a@b.com")
	require.Equal(t, canonical, alias)

	status, _ = doJSON(t, a, http.MethodPost, "/future_work", map[string]any{
		"user_email": "a@b.com", "title": "rewrite",
	})
	require.Equal(t, http.StatusCreated, status)

	_, canonical = doJSONList(t, a, "/future_work/a@b.com")
	_, alias = doJSONList(t, a, "/future/a@b.com")
	require.Equal(t, canonical, alias)
}

func TestCareerGoalDefaults(t *testing.T) {
	a := newTestApp(t, false)

	status, body := doJSON(t, a, http.MethodPost, "/career_goals", map[string]any{
		"user_email": "a@b.com", "title": "principal",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "medium", body["priority"])
	require.Equal(t, "active", body["status"])
	require.Equal(t, float64(0), body["progress"])
}

func TestMeetingsScopedByColleagueEmail(t *testing.T) {
	a := newTestApp(t, false)

	status, _ := doJSON(t, a, http.MethodPost, "/meetings", map[string]any{
		"colleague_email": "x@y.com", "meeting_date": "2026-09-03", "description": "1:1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, list := doJSONList(t, a, "/meetings/x@y.com")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	require.Equal(t, "1:1", list[0]["description"])

	_, other := doJSONList(t, a, "/meetings/nobody@y.com")
	require.Empty(t, other)
}

func TestAuthRequiredEnforcesOwnership(t *testing.T) {
	a := newTestApp(t, true)

	status, _ := doJSON(t, a, http.MethodPost, "/signup", map[string]any{
		"email": "a@b.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, a, http.MethodPost, "/login", map[string]any{
		"email": "a@b.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	tok := body["token"].(string)

	status, body = doJSON(t, a, http.MethodGet, "/ideas/a@b.com", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotEmpty(t, body["error"])

	status, _ = doRawStatus(t, a, http.MethodGet, "/ideas/a@b.com", "Bearer "+tok)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, a, http.MethodGet, "/ideas/other@b.com", nil, "Authorization", "Bearer "+tok)
	require.Equal(t, http.StatusForbidden, status)
	require.NotEmpty(t, body["error"])
}

func doRawStatus(t *testing.T, a *App, method, path, bearer string) (int, []byte) {
	t.Helper()
	return doRaw(t, a, method, path, nil, "Authorization", bearer)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
