package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicsync/controllers"
	"civicsync/geo"
	"civicsync/kvstore"
	"civicsync/logger"
	"civicsync/middlewares"
	"civicsync/models"
	"civicsync/services"
	"civicsync/store"
	authUtils "civicsync/utils"
)

const testSecret = "router-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	store   *store.MemoryIssueStore
	session *services.Session
}

func newTestApp(t *testing.T, limiter gin.HandlerFunc) *testApp {
	t.Helper()
	ctx := context.Background()
	log := logger.Noop()

	issueStore := store.NewMemoryIssueStore()
	require.NoError(t, store.Seed(ctx, issueStore, store.MockIssues(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	session := services.NewSession(kvstore.NewMemory(), services.AcceptAnyCredentials{}, log)
	require.NoError(t, session.Restore(ctx))

	query := services.NewIssueQuery(issueStore, log)
	deps := Dependencies{
		Auth:         &controllers.AuthController{Session: session, JWTSecret: testSecret, Logger: log},
		Issues:       &controllers.IssueController{Query: query, Mutation: services.NewIssueMutation(issueStore, log, services.WithFormValidation()), Projection: geo.DefaultProjection, Logger: log},
		Users:        &controllers.UserController{Query: query, Logger: log},
		RequireAuth:  middlewares.AuthMiddleware(testSecret, session, log),
		IssueLimiter: limiter,
	}

	return &testApp{router: New(deps), store: issueStore, session: session}
}

func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func authCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.AuthCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", middlewares.AuthCookie)
	return nil
}

func issueBody() gin.H {
	return gin.H{
		"title":       "Open manhole near school",
		"description": "An uncovered manhole next to the school gate is a danger to children.",
		"category":    "Public Safety",
		"location":    gin.H{"latitude": 19.076, "longitude": 72.8777, "address": "Mumbai"},
	}
}

func TestPing(t *testing.T) {
	app := newTestApp(t, nil)
	w := app.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestListIssues(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/api/issues?page=2&limit=4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Issues      []models.Issue `json:"issues"`
		CurrentPage int            `json:"currentPage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Issues, 4)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, "Damaged Signage", resp.Issues[1].Title)

	w = app.do(t, http.MethodGet, "/api/issues?page=9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Issues)
}

func TestListIssues_HugePage(t *testing.T) {
	app := newTestApp(t, nil)

	for _, page := range []string{"9223372036854775807", "99999999999999999999999"} {
		w := app.do(t, http.MethodGet, "/api/issues?page="+page, nil)
		require.Equal(t, http.StatusOK, w.Code, page)

		var resp struct {
			Issues []models.Issue `json:"issues"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Issues, 0, page)
	}
}

func TestStatistics(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/api/issues/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.IssueStatistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 10, stats.TotalIssues)
	assert.Equal(t, 4, stats.StatusStats[models.Pending])
	assert.Len(t, stats.TopVotedIssues, 5)
	assert.Equal(t, "Water Leak", stats.TopVotedIssues[0].Title)
}

func TestGetIssue(t *testing.T) {
	app := newTestApp(t, nil)
	all, err := app.store.All(context.Background())
	require.NoError(t, err)

	w := app.do(t, http.MethodGet, "/api/issues/"+all[2].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Garbage Collection Issue")

	w = app.do(t, http.MethodGet, "/api/issues/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMapMarkers(t *testing.T) {
	app := newTestApp(t, nil)

	// Seed data lies outside the default bounds.
	w := app.do(t, http.MethodGet, "/api/issues/map", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"markers":[]`)

	login := app.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@b.com", "password": "pw"})
	require.Equal(t, http.StatusOK, login.Code)
	created := app.do(t, http.MethodPost, "/api/issues", issueBody(), authCookie(t, login))
	require.Equal(t, http.StatusCreated, created.Code)

	w = app.do(t, http.MethodGet, "/api/issues/map", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Open manhole near school")
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null,"isAuthenticated":false,"isLoading":false}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/register", gin.H{"name": "", "email": "a@b.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/register", gin.H{"name": "Ravi", "email": "ravi@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "Ravi", user.Name)
	cookie := authCookie(t, w)

	w = app.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Contains(t, w.Body.String(), `"isAuthenticated":true`)
	assert.Contains(t, w.Body.String(), user.ID)

	w = app.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, app.session.IsAuthenticated())
}

func TestLogout_RequiresSessionToken(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "ravi@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, app.session.IsAuthenticated())

	stale, err := authUtils.GenerateToken(testSecret, "user-someoneelse")
	require.NoError(t, err)
	w = app.do(t, http.MethodPost, "/api/auth/logout", nil, &http.Cookie{Name: middlewares.AuthCookie, Value: stale})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, app.session.IsAuthenticated())
}

func TestCreateIssue(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/api/issues", issueBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 10, app.store.Len())

	login := app.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "meera@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, login.Code)
	cookie := authCookie(t, login)

	w = app.do(t, http.MethodPost, "/api/issues", issueBody(), cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var issue models.Issue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	assert.Equal(t, models.Pending, issue.Status)
	assert.Equal(t, "meera", issue.ReporterName)
	assert.Equal(t, 11, app.store.Len())

	bad := issueBody()
	bad["category"] = "Road"
	w = app.do(t, http.MethodPost, "/api/issues", bad, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 11, app.store.Len())
}

func TestMyIssues(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/api/users/me/issues", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login := app.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "meera@example.com", "password": "pw"})
	cookie := authCookie(t, login)

	w = app.do(t, http.MethodGet, "/api/users/me/issues", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"issues":[]`)

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/issues", issueBody(), cookie).Code)

	w = app.do(t, http.MethodGet, "/api/users/me/issues", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Open manhole near school")
}

func TestCreateIssue_RateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	app := newTestApp(t, middlewares.IssueRateLimiter(rdb, "issue_limit", 1, logger.Noop()))

	login := app.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@b.com", "password": "pw"})
	cookie := authCookie(t, login)

	assert.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/issues", issueBody(), cookie).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(t, http.MethodPost, "/api/issues", issueBody(), cookie).Code)
	assert.Equal(t, 11, app.store.Len())
}

func TestCORS(t *testing.T) {
	log := logger.Noop()
	session := services.NewSession(kvstore.NewMemory(), services.AcceptAnyCredentials{}, log)
	query := services.NewIssueQuery(store.NewMemoryIssueStore(), log)
	r := New(Dependencies{
		Auth:           &controllers.AuthController{Session: session, JWTSecret: testSecret, Logger: log},
		Issues:         &controllers.IssueController{Query: query, Projection: geo.DefaultProjection, Logger: log},
		Users:          &controllers.UserController{Query: query, Logger: log},
		RequireAuth:    middlewares.AuthMiddleware(testSecret, session, log),
		AllowedOrigins: []string{"https://civic.example"},
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://civic.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://civic.example", w.Header().Get("Access-Control-Allow-Origin"))
}
