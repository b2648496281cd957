package handlers

import (
	"net/http"

	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List shows the current user's notifications, most recently created first.
// Ordered by id, not timestamp.
func (h *NotificationHandler) List(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var notifications []models.Notification
	h.db.Where("user_id = ?", user.ID).
		Order("id DESC").
		Find(&notifications)

	Render(c, http.StatusOK, "notification/list.html", gin.H{
		"Title":         "Notifications",
		"Notifications": notifications,
	})
}

// Read marks one of the current user's notifications as read. A missing id
// or someone else's notification is a silent no-op; the response is the
// redirect back to the list either way.
func (h *NotificationHandler) Read(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	if id := utils.StringToUint(c.Param("id")); id != 0 {
		var notification models.Notification
		if err := h.db.Where("id = ? AND user_id = ?", id, user.ID).
			First(&notification).Error; err == nil {
			notification.IsRead = true
			h.db.Save(&notification)
		}
	}

	c.Redirect(http.StatusFound, "/notifications")
}
