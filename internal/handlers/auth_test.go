package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"miniblog/internal/models"

	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	app, database := newTestApp(t)
	c := newClient(t, app)

	c.register("alice", "secret")

	var user models.User
	require.NoError(t, database.Where("username = ?", "alice").First(&user).Error)
	require.NotEqual(t, "secret", user.Password, "password must not be stored in plaintext")

	c.login("alice", "secret")

	w := c.get("/home")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app, database := newTestApp(t)
	c := newClient(t, app)

	c.register("alice", "secret")

	w := c.postForm("/register", url.Values{"username": {"alice"}, "password": {"other"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register", w.Header().Get("Location"))

	var count int64
	database.Model(&models.User{}).Where("username = ?", "alice").Count(&count)
	require.EqualValues(t, 1, count, "second registration must not create a row")
}

func TestRegisterRequiresUsernameAndPassword(t *testing.T) {
	app, database := newTestApp(t)
	c := newClient(t, app)

	w := c.postForm("/register", url.Values{"username": {""}, "password": {""}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	c.register("alice", "secret")

	wrongPassword := c.postForm("/login", url.Values{"username": {"alice"}, "password": {"nope"}})
	unknownUser := c.postForm("/login", url.Values{"username": {"mallory"}, "password": {"nope"}})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String(),
		"unknown user and bad password must produce the same response")
	require.Contains(t, wrongPassword.Body.String(), "Invalid credentials")
}

func TestProtectedRoutesRedirectAnonymousUsers(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	for _, path := range []string{"/home", "/create_post", "/notifications"} {
		w := c.get(path)
		require.Equal(t, http.StatusFound, w.Code, path)
		require.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	c.register("alice", "secret")
	c.login("alice", "secret")

	w := c.get("/logout")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/landing", w.Header().Get("Location"))

	w = c.get("/home")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func TestIndexRedirectsToLanding(t *testing.T) {
	app, _ := newTestApp(t)
	c := newClient(t, app)

	w := c.get("/")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/landing", w.Header().Get("Location"))

	w = c.get("/landing")
	require.Equal(t, http.StatusOK, w.Code)
}
