package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/landing")
}

func (h *PageHandler) Landing(c *gin.Context) {
	Render(c, http.StatusOK, "landing.html", gin.H{
		"Title": "Welcome",
	})
}
