package handlers

import (
	"net/http"

	"miniblog/internal/models"
	"miniblog/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAuthHandler(db *gorm.DB, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, logger: logger}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Title": "Register",
			"Error": "Username and password are required",
		})
		return
	}

	// Case-sensitive exact match; usernames are globally unique
	var existing models.User
	if err := h.db.Where("username = ?", username).First(&existing).Error; err == nil {
		SetFlash(c, "Username already taken")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		h.logger.Error("password hashing failed", zap.Error(err))
		Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{
			"Title": "Register",
			"Error": "Registration failed, please try again",
		})
		return
	}

	user := models.User{
		Username: username,
		Password: hash,
	}
	if err := h.db.Create(&user).Error; err != nil {
		// The unique index catches registrations racing on the same name
		SetFlash(c, "Username already taken")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	// No auto-login after signup
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Log in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	// Unknown username and wrong password must look identical to the caller
	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Log in",
			"Error": "Invalid credentials",
		})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Log in",
			"Error": "Invalid credentials",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/home")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/landing")
}
