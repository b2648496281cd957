package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"miniblog/internal/db"
	"miniblog/internal/middleware"
	"miniblog/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestApp wires the real route table and middleware onto an in-memory
// sqlite database. Views are replaced with skeleton templates that print the
// data the tests assert on.
func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // a second connection would get its own empty :memory: db
	require.NoError(t, db.Migrate(database))

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("miniblog_session", store))
	r.HTMLRender = testRenderer()
	r.Use(middleware.LoadUser(database))
	router.RegisterRoutes(r, database, zap.NewNop())

	return r, database
}

func testRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	pages := map[string]string{
		"landing.html":           "landing",
		"auth/login.html":        "login|{{.Error}}",
		"auth/register.html":     "register|{{.Error}}",
		"post/list.html":         "{{.Flash}}|{{range .Posts}}{{.ID}}:{{.Title}};{{end}}",
		"post/create.html":       "create|{{.Error}}",
		"post/edit.html":         "edit|{{.Error}}",
		"post/detail.html":       "{{.Post.ID}}|{{range .Comments}}{{.ID}};{{end}}",
		"user/profile.html":      "{{.Profile.Username}}|{{range .Posts}}{{.ID}};{{end}}",
		"notification/list.html": "{{range .Notifications}}{{.ID}}:{{.IsRead}};{{end}}",
		"403.html":               "forbidden",
		"404.html":               "not found",
	}
	for name, tmpl := range pages {
		r.AddFromString(name, tmpl)
	}
	return r
}

// client carries the session cookie across requests, like a browser would.
type client struct {
	t       *testing.T
	app     *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, app *gin.Engine) *client {
	return &client{t: t, app: app, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.app.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, target, nil)
}

func (c *client) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, target, form)
}

func (c *client) register(username, password string) {
	c.t.Helper()
	w := c.postForm("/register", url.Values{"username": {username}, "password": {password}})
	require.Equal(c.t, http.StatusFound, w.Code)
	require.Equal(c.t, "/login", w.Header().Get("Location"))
}

func (c *client) login(username, password string) {
	c.t.Helper()
	w := c.postForm("/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(c.t, http.StatusFound, w.Code)
	require.Equal(c.t, "/home", w.Header().Get("Location"))
}
