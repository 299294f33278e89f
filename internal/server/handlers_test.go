// internal/server/handlers_test.go
package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"competition-intake/internal/auth"
	"competition-intake/internal/common/config"
	"competition-intake/internal/common/database"
	"competition-intake/internal/common/logger"
	"competition-intake/internal/models"
	"competition-intake/internal/paging"
	"competition-intake/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type recordingNotifier struct {
	apps []*models.Application
}

func (n *recordingNotifier) Submitted(_ context.Context, app *models.Application) {
	n.apps = append(n.apps, app)
}

type testEnv struct {
	handler  http.Handler
	store    store.Store
	notifier *recordingNotifier
}

func setupEnv(t *testing.T) *testEnv {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewTestLogger(t)
	db := &database.RedisClient{Client: client}
	st := store.NewRedisStore(db, log)
	notifier := &recordingNotifier{}

	srv := New(config.ServerConfig{}, st, notifier, log)
	gate := auth.NewBasicAuth(config.AdminConfig{Username: "admin", Password: "s3cret"}, log)

	return &testEnv{
		handler:  srv.Handler(gate, func(context.Context) error { return nil }),
		store:    st,
		notifier: notifier,
	}
}

func submissionBody(email, discordID string) map[string]interface{} {
	return map[string]interface{}{
		"name":                      "Jane Doe",
		"email":                     email,
		"discordId":                 discordID,
		"teamName":                  "Pixel Forge",
		"teamMembers":               "Jane, Alex and two artists",
		"teamExperience":            "Three shipped game jams",
		"previousProjects":          "https://example.com/projects",
		"teamExperienceDescription": "We have shipped two mobile titles and several browser games over four years.",
		"gameTitle":                 "Sky Harvest",
		"gameConcept":               "A cozy farming game set on floating islands where weather is the core mechanic and resource.",
		"whyWin":                    "Novel weather-driven farming loop with strong art direction",
		"whyPlayersLike":            "Short satisfying sessions and a relaxing progression curve",
		"promotionPlan":             "Creator partnerships plus weekly devlog content on socials",
		"monetizationPlan":          "Cosmetic passes and seasonal island themes, no pay-to-win",
		"projectedDAU":              5000,
		"dayOneRetention":           40,
		"developmentTimeline":       "Vertical slice in six weeks, beta at three months",
		"resourcesTools":            "Unity, Blender, FMOD and a shared asset pipeline",
		"acknowledgment":            true,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}, asAdmin bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if asAdmin {
		req.SetBasicAuth("admin", "s3cret")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) submit(t *testing.T, email, discordID string) *httptest.ResponseRecorder {
	return e.do(t, http.MethodPost, "/api/applications", submissionBody(email, discordID), false)
}

// ==========================
// Submission
// ==========================

func TestSubmit_Success(t *testing.T) {
	env := setupEnv(t)

	rec := env.submit(t, "jane@example.com", "jane#1234")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success       bool   `json:"success"`
		ApplicationID string `json:"applicationId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ApplicationID)

	apps, err := env.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, resp.ApplicationID, apps[0].ID)

	// Confirmation notification fired for the committed record.
	require.Len(t, env.notifier.apps, 1)
	assert.Equal(t, resp.ApplicationID, env.notifier.apps[0].ID)
}

func TestSubmit_DuplicateEmail(t *testing.T) {
	env := setupEnv(t)

	require.Equal(t, http.StatusCreated, env.submit(t, "a@x.com", "a#1234").Code)

	rec := env.submit(t, "a@x.com", "b#5678")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email_exists", resp.Error)
	assert.Equal(t, "DUPLICATE_EMAIL", resp.Code)

	// Only the first record survives.
	apps, err := env.store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestSubmit_DuplicateDiscordID(t *testing.T) {
	env := setupEnv(t)

	require.Equal(t, http.StatusCreated, env.submit(t, "a@x.com", "shared#1234").Code)

	rec := env.submit(t, "b@x.com", "shared#1234")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "discord_exists", resp.Error)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	env := setupEnv(t)

	body := submissionBody("not-an-email", "jane#1234")
	rec := env.do(t, http.MethodPost, "/api/applications", body, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)

	// Nothing persisted, nothing notified.
	apps, err := env.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.Empty(t, env.notifier.apps)
}

// ==========================
// Admin listing
// ==========================

func TestList_RequiresAuth(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodGet, "/api/applications", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestList_Paginated(t *testing.T) {
	env := setupEnv(t)

	for i := 0; i < 25; i++ {
		rec := env.submit(t, fmt.Sprintf("user%02d@x.com", i), fmt.Sprintf("user%02d#0001", i))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/applications?page=3&pageSize=10", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var page paging.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 5)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
}

func TestList_Search(t *testing.T) {
	env := setupEnv(t)

	require.Equal(t, http.StatusCreated, env.submit(t, "alice@x.com", "alice#1111").Code)
	require.Equal(t, http.StatusCreated, env.submit(t, "bob@x.com", "bob#2222").Code)

	rec := env.do(t, http.MethodGet, "/api/applications?q=alice", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var page paging.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "alice@x.com", page.Data[0].Email)
}

// ==========================
// Get / Delete
// ==========================

func TestGetAndDelete(t *testing.T) {
	env := setupEnv(t)

	rec := env.submit(t, "jane@x.com", "jane#1234")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ApplicationID string `json:"applicationId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.do(t, http.MethodGet, "/api/applications/"+created.ApplicationID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var app models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, "jane@x.com", app.Email)

	rec = env.do(t, http.MethodDelete, "/api/applications/"+created.ApplicationID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second delete reports not-found.
	rec = env.do(t, http.MethodDelete, "/api/applications/"+created.ApplicationID, nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_RequiresAuth(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/applications/some-id", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ==========================
// Export
// ==========================

func TestExport_CSV(t *testing.T) {
	env := setupEnv(t)

	require.Equal(t, http.StatusCreated, env.submit(t, "jane@x.com", "jane#1234").Code)

	rec := env.do(t, http.MethodGet, "/api/admin/export?format=csv", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "applications.csv")

	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestExport_JSON(t *testing.T) {
	env := setupEnv(t)

	require.Equal(t, http.StatusCreated, env.submit(t, "jane@x.com", "jane#1234").Code)

	rec := env.do(t, http.MethodGet, "/api/admin/export?format=json", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "applications.json")

	var apps []models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "jane@x.com", apps[0].Email)
}

func TestExport_InvalidFormat(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/export?format=xml", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_RequiresAuth(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/export?format=csv", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
