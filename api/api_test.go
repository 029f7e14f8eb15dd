package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
)

const (
	testPassword = "correct horse battery staple"
	testSecret   = "0123456789abcdef0123456789abcdef"
)

func setupTestRouter(t *testing.T, opts ...Option) (*chi.Mux, database.Database) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(gdb))

	db := database.New(gdb, database.Snapshots{})
	cfg := map[string]string{
		"ADMIN_PASSWORD":     testPassword,
		"SESSION_SECRET":     testSecret,
		"COOKIE_SECURE":      "false",
		"CONTACT_RATE_LIMIT": "3",
		"ACCEPTED_ORIGINS":   "https://example.com",
	}
	router, err := newRouter(db, append([]Option{WithConfig(cfg)}, opts...)...)
	require.NoError(t, err)
	return router, db
}

func do(t *testing.T, h http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/login", map[string]string{"password": testPassword}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			assert.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func scenarioProject() map[string]any {
	return map[string]any{
		"title":       "X",
		"description": "Y",
		"techStacks":  []string{"Go"},
		"difficulty":  "Easy",
		"img":         "http://x/i.png",
		"status":      "draft",
		"order":       0,
	}
}

func TestDraftBecomesPublicAfterGoingLive(t *testing.T) {
	router, _ := setupTestRouter(t)
	cookie := login(t, router)

	rec := do(t, router, http.MethodPost, "/api/admin/projects", scenarioProject(), cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[createResponse](t, rec)
	assert.True(t, created.Success)
	require.NotEmpty(t, created.ID)

	rec = do(t, router, http.MethodGet, "/api/admin/projects", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	admin := decode[[]models.Project](t, rec)
	require.Len(t, admin, 1)
	assert.Equal(t, "draft", admin[0].Status)

	rec = do(t, router, http.MethodGet, "/api/projects", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Project](t, rec))

	rec = do(t, router, http.MethodGet, "/api/projects/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "a draft is not reachable by id")

	rec = do(t, router, http.MethodPut, "/api/admin/projects/"+created.ID, map[string]any{"status": "live"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[successResponse](t, rec).Success)

	rec = do(t, router, http.MethodGet, "/api/projects", nil, nil)
	public := decode[[]models.Project](t, rec)
	require.Len(t, public, 1)
	assert.Equal(t, created.ID, public[0].ID)

	rec = do(t, router, http.MethodGet, "/api/projects/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicSurfaceHidesInactiveRecords(t *testing.T) {
	ctx := context.Background()
	router, db := setupTestRouter(t)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []string{models.StatusActive, models.StatusInactive} {
		_, err := db.ExperienceRepo().Create(ctx, &models.Experience{
			Company: status, Position: "Dev", Description: "d", Skills: []string{"Go"}, Location: "Remote",
			StartDate: start, EndDate: &end, IsCurrentJob: true, Status: status,
		})
		require.NoError(t, err)
		_, err = db.EducationRepo().Create(ctx, &models.Education{
			Institution: status, Degree: "BSc", Field: "CS", Achievements: []string{}, Location: "Lisbon",
			StartDate: start, Status: status,
		})
		require.NoError(t, err)
	}

	rec := do(t, router, http.MethodGet, "/api/experiences", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	experiences := decode[[]map[string]any](t, rec)
	require.Len(t, experiences, 1)
	assert.Equal(t, models.StatusActive, experiences[0]["status"])
	assert.NotContains(t, experiences[0], "endDate", "a current job shows no end date")

	rec = do(t, router, http.MethodGet, "/api/educations", nil, nil)
	educations := decode[[]models.Education](t, rec)
	require.Len(t, educations, 1)
	assert.Equal(t, models.StatusActive, educations[0].Status)

	cookie := login(t, router)
	rec = do(t, router, http.MethodGet, "/api/admin/experiences", nil, cookie)
	assert.Len(t, decode[[]models.Experience](t, rec), 2)
}

func TestCreateReportsFirstMissingField(t *testing.T) {
	router, db := setupTestRouter(t)
	cookie := login(t, router)

	body := scenarioProject()
	delete(body, "description")
	delete(body, "img")
	rec := do(t, router, http.MethodPost, "/api/admin/projects", body, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "Missing required field: description", resp.Error)
	assert.Equal(t, "description", resp.Field)

	rec = do(t, router, http.MethodPost, "/api/admin/techstacks", map[string]any{"name": "Go", "category": "backend"}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: icon", decode[ErrorResponse](t, rec).Error)

	rec = do(t, router, http.MethodPost, "/api/admin/experiences", map[string]any{
		"company": "Acme", "position": "Dev", "description": "d", "location": "Remote",
		"startDate": "2020-01-01", "status": "active",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: skills", decode[ErrorResponse](t, rec).Error)

	rec = do(t, router, http.MethodPost, "/api/admin/educations", map[string]any{
		"institution": "Uni", "degree": "BSc", "field": "CS", "location": "Porto",
		"startDate": "2015-09-01", "status": "active",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: achievements", decode[ErrorResponse](t, rec).Error)

	count, err := db.ProjectRepo().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = db.ExperienceRepo().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = db.EducationRepo().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateAndUpdateCoerceDates(t *testing.T) {
	router, db := setupTestRouter(t)
	cookie := login(t, router)

	rec := do(t, router, http.MethodPost, "/api/admin/educations", map[string]any{
		"institution": "Uni", "degree": "BSc", "field": "CS", "achievements": []string{"Dean's list"}, "location": "Porto",
		"startDate": "2015-09-01", "endDate": "", "status": "active",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode[createResponse](t, rec).ID

	rec = do(t, router, http.MethodPut, "/api/admin/educations/"+id, map[string]any{"endDate": "2019-07-15"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, err := db.EducationRepo().Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, got.StartDate.Equal(time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(time.Date(2019, 7, 15, 0, 0, 0, 0, time.UTC)))

	rec = do(t, router, http.MethodPut, "/api/admin/educations/"+id, map[string]any{"startDate": "soon"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/admin/educations/"+id, map[string]any{"degree": ""}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: degree", decode[ErrorResponse](t, rec).Error)
}

func TestNotFoundResponses(t *testing.T) {
	router, _ := setupTestRouter(t)
	cookie := login(t, router)

	cases := []struct {
		method, path, message string
		body                  any
	}{
		{http.MethodGet, "/api/admin/projects/nope", "Project not found", nil},
		{http.MethodPut, "/api/admin/experiences/nope", "Experience not found", map[string]any{"company": "Acme"}},
		{http.MethodDelete, "/api/admin/techstacks/nope", "Tech stack not found", nil},
		{http.MethodGet, "/api/educations/nope", "Education not found", nil},
	}
	for _, tc := range cases {
		rec := do(t, router, tc.method, tc.path, tc.body, cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
		assert.Equal(t, tc.message, decode[ErrorResponse](t, rec).Error)
	}
}

func TestReorderEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	cookie := login(t, router)

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		body := map[string]any{"name": name, "category": "backend", "icon": "i", "status": "active"}
		rec := do(t, router, http.MethodPost, "/api/admin/techstacks", body, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		ids = append(ids, decode[createResponse](t, rec).ID)
	}

	rec := do(t, router, http.MethodPost, "/api/admin/techstacks/reorder", map[string]any{"orderedIds": "a,b"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/admin/techstacks/reorder", map[string]any{}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/admin/techstacks/reorder", map[string]any{"orderedIds": []any{1, 2}}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/admin/techstacks/reorder", map[string]any{"orderedIds": []string{}}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/admin/techstacks", nil, cookie)
	unchanged := decode[[]models.TechStack](t, rec)
	assert.Equal(t, []string{ids[0], ids[1], ids[2]}, []string{unchanged[0].ID, unchanged[1].ID, unchanged[2].ID})

	rec = do(t, router, http.MethodPost, "/api/admin/techstacks/reorder", map[string]any{"orderedIds": []string{ids[2], ids[0], ids[1]}}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[successResponse](t, rec).Success)

	rec = do(t, router, http.MethodGet, "/api/techstacks", nil, nil)
	items := decode[[]models.TechStack](t, rec)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{items[0].Name, items[1].Name, items[2].Name})
	assert.Equal(t, []int{0, 1, 2}, []int{items[0].Order, items[1].Order, items[2].Order})
}

func TestAdminRequiresSession(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/api/admin/projects", "/api/admin/queries", "/api/admin/summary"} {
		rec := do(t, router, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	forged := &http.Cookie{Name: sessionCookieName, Value: "not-a-jwt"}
	rec := do(t, router, http.MethodGet, "/api/admin/projects", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired := sessionIssuer{secret: []byte(testSecret), ttl: time.Hour}
	token, _, err := expired.issue(time.Now().Add(-2 * time.Hour))
	require.NoError(t, err)
	rec = do(t, router, http.MethodGet, "/api/admin/projects", nil, &http.Cookie{Name: sessionCookieName, Value: token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginLogoutSession(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/auth/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = do(t, router, http.MethodGet, "/api/auth/session", nil, nil)
	assert.False(t, decode[sessionResponse](t, rec).Authenticated)

	cookie := login(t, router)
	rec = do(t, router, http.MethodGet, "/api/auth/session", nil, cookie)
	assert.True(t, decode[sessionResponse](t, rec).Authenticated)

	rec = do(t, router, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestLoginDisabledWithoutPassword(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	router, err := newRouter(database.New(gdb, database.Snapshots{}), WithConfig(map[string]string{}))
	require.NoError(t, err)

	rec := do(t, router, http.MethodPost, "/api/auth/login", map[string]string{"password": ""}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	_, err = newRouter(database.New(gdb, database.Snapshots{}), WithConfig(map[string]string{"ADMIN_PASSWORD": "x", "SESSION_SECRET": "short"}))
	assert.Error(t, err)
}

type fakeNotifier struct {
	queries []models.Query
	err     error
}

func (f *fakeNotifier) NotifyContact(_ context.Context, query models.Query) error {
	f.queries = append(f.queries, query)
	return f.err
}

func TestContactStoresQueryAndNotifies(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("resend down")}
	router, db := setupTestRouter(t, WithNotifier(notifier))

	rec := do(t, router, http.MethodPost, "/api/contact", map[string]any{"name": "Ana", "email": "ana@example.com"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: message", decode[ErrorResponse](t, rec).Error)

	rec = do(t, router, http.MethodPost, "/api/contact", map[string]any{"name": "Ana", "email": "nope", "message": "Hi"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/contact", map[string]any{"name": "Ana", "email": "ana@example.com", "message": "Hi", "status": "replied"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, "a failed notification does not fail the request")
	id := decode[createResponse](t, rec).ID

	require.Len(t, notifier.queries, 1)
	assert.Equal(t, id, notifier.queries[0].ID)

	stored, err := db.QueryRepo().FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.QueryStatusNew, stored.Status)
	assert.Equal(t, "192.0.2.1", stored.IP)

	cookie := login(t, router)
	rec = do(t, router, http.MethodPut, "/api/admin/queries/"+id, map[string]any{"status": "read"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, router, http.MethodGet, "/api/admin/summary", nil, cookie)
	assert.Zero(t, decode[database.Summary](t, rec).NewQueries)

	rec = do(t, router, http.MethodDelete, "/api/admin/queries/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/admin/queries", nil, cookie)
	assert.Empty(t, decode[[]models.Query](t, rec))
}

func TestContactIsRateLimited(t *testing.T) {
	router, _ := setupTestRouter(t)
	body := map[string]any{"name": "Ana", "email": "ana@example.com", "message": "Hi"}

	for range 3 {
		rec := do(t, router, http.MethodPost, "/api/contact", body, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, router, http.MethodPost, "/api/contact", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func newTestRedisCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.New(rdb, time.Minute), mr
}

func TestContactLimitIsSharedThroughRedis(t *testing.T) {
	shared, mr := newTestRedisCache(t)
	first, _ := setupTestRouter(t, WithCache(shared))
	second, _ := setupTestRouter(t, WithCache(shared))
	body := map[string]any{"name": "Ana", "email": "ana@example.com", "message": "Hi"}

	for range 2 {
		rec := do(t, first, http.MethodPost, "/api/contact", body, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := do(t, second, http.MethodPost, "/api/contact", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, second, http.MethodPost, "/api/contact", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "the other instance already counted three")

	key := cache.RateKey("contact", "192.0.2.1")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestRateLimiterFallsBackToMemoryWhenRedisFails(t *testing.T) {
	shared, mr := newTestRedisCache(t)
	rl := NewRateLimiter(2, time.Minute).WithCounter(shared, "login")
	mr.SetError("READONLY unavailable")
	ctx := context.Background()
	now := time.Now()

	assert.True(t, rl.admit(ctx, "a", now))
	assert.True(t, rl.admit(ctx, "a", now))
	assert.False(t, rl.admit(ctx, "a", now))

	mr.SetError("")
	assert.True(t, rl.admit(ctx, "a", now), "redis counts again once it recovers")
	assert.Equal(t, "1", mustGet(t, mr, cache.RateKey("login", "a")))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Now()

	assert.True(t, rl.allow("a", now))
	assert.True(t, rl.allow("a", now))
	assert.False(t, rl.allow("a", now))
	assert.True(t, rl.allow("b", now), "limits are per client")
	assert.True(t, rl.allow("a", now.Add(2*time.Minute)), "a new window starts fresh")
}

type fakeUploader struct {
	filename string
	body     []byte
}

func (f *fakeUploader) Upload(_ context.Context, prefix, filename, _ string, body io.Reader) (string, error) {
	f.filename = filename
	f.body, _ = io.ReadAll(body)
	return "https://cdn.example.com/" + prefix + "/x.png", nil
}

func TestUpload(t *testing.T) {
	uploader := &fakeUploader{}
	router, _ := setupTestRouter(t, WithUploader(uploader))
	cookie := login(t, router)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "logo.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[uploadResponse](t, rec)
	assert.Equal(t, "https://cdn.example.com/uploads/x.png", resp.URL)
	assert.Equal(t, "logo.png", uploader.filename)
	assert.Equal(t, []byte("png-bytes"), uploader.body)
}

func TestUploadDisabled(t *testing.T) {
	router, _ := setupTestRouter(t)
	cookie := login(t, router)
	rec := do(t, router, http.MethodPost, "/api/admin/uploads", nil, cookie)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := setupTestRouter(t, WithSnapshotStatus(map[string]bool{"projects": true}))

	rec := do(t, router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[healthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.Snapshots["projects"])

	rec = do(t, router, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portfolio_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestMalformedBody(t *testing.T) {
	router, _ := setupTestRouter(t)
	cookie := login(t, router)

	rec := do(t, router, http.MethodPost, "/api/admin/projects", "{not json", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := scenarioProject()
	body["techStacks"] = "Go"
	rec = do(t, router, http.MethodPost, "/api/admin/projects", body, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
