package handlers

import (
	"net/http"

	"miniblog/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// Profile is the public page for /user/:username with the user's posts,
// newest first.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		RenderNotFound(c, "User not found")
		return
	}

	var posts []models.Post
	h.db.Preload("User").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&posts)

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":   user.Username,
		"Profile": user,
		"Posts":   posts,
	})
}
