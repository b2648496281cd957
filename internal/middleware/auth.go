package middleware

import (
	"net/http"

	"miniblog/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// AuthRequired ensures a user is logged in. It runs after LoadUser, so a
// session pointing at a user row that no longer resolves is cleared instead
// of reaching a handler.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, exists := c.Get(CheckUserKey); !exists {
			session.Clear()
			session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoadUser retrieves the session user and sets it on the request context,
// together with the unread notification count shown in the navbar.
func LoadUser(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			if err := database.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)

				var count int64
				database.Model(&models.Notification{}).
					Where("user_id = ? AND is_read = ?", user.ID, false).
					Count(&count)
				c.Set(UnreadCountKey, count)
			}
		}
		c.Next()
	}
}
