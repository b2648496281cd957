package handlers

import (
	"net/http"

	"miniblog/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const flashKey = "flash"

// Render injects common view data (current user, unread notification count,
// pending flash message) before handing off to the template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
		if count, ok := c.Get(middleware.UnreadCountKey); ok {
			obj["UnreadCount"] = int(count.(int64))
		} else {
			obj["UnreadCount"] = 0
		}
	}

	if flash := takeFlash(c); flash != "" {
		obj["Flash"] = flash
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderNotFound shows the dedicated 404 page.
func RenderNotFound(c *gin.Context, message string) {
	Render(c, http.StatusNotFound, "404.html", gin.H{"Error": message})
}

// RenderForbidden shows the dedicated 403 page.
func RenderForbidden(c *gin.Context, message string) {
	Render(c, http.StatusForbidden, "403.html", gin.H{"Error": message})
}

// SetFlash stores a one-shot message shown on the next rendered page.
func SetFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.Set(flashKey, message)
	session.Save()
}

func takeFlash(c *gin.Context) string {
	session := sessions.Default(c)
	v := session.Get(flashKey)
	if v == nil {
		return ""
	}
	session.Delete(flashKey)
	session.Save()
	message, _ := v.(string)
	return message
}
