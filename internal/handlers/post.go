package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PostHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPostHandler(db *gorm.DB, logger *zap.Logger) *PostHandler {
	return &PostHandler{db: db, logger: logger}
}

// Home lists every post, newest first. No pagination on purpose.
func (h *PostHandler) Home(c *gin.Context) {
	var posts []models.Post
	h.db.Preload("User").Order("created_at DESC").Find(&posts)

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title": "Home",
		"Posts": posts,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "post/create.html", gin.H{"Title": "New Post"})
}

// Create persists the post and fans out one notification per other existing
// user, all inside a single transaction so a failed fan-out rolls the post
// back too.
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	title := c.PostForm("title")
	content := c.PostForm("content")

	if title == "" || content == "" {
		Render(c, http.StatusBadRequest, "post/create.html", gin.H{
			"Title": "New Post",
			"Error": "Title and content are required",
		})
		return
	}

	post := models.Post{
		UserID:  user.ID,
		Title:   title,
		Content: content, // raw markdown, rendered at view time
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		var recipients []models.User
		if err := tx.Where("id <> ?", user.ID).Find(&recipients).Error; err != nil {
			return err
		}

		for _, recipient := range recipients {
			notification := models.Notification{
				UserID:  recipient.ID,
				Message: fmt.Sprintf("%s posted: '%s'", user.Username, post.Title),
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.logger.Error("post creation failed", zap.Uint("user_id", user.ID), zap.Error(err))
		Render(c, http.StatusInternalServerError, "post/create.html", gin.H{
			"Title": "New Post",
			"Error": "Could not publish the post",
		})
		return
	}

	SetFlash(c, "Post created successfully!")
	c.Redirect(http.StatusFound, "/home")
}

func (h *PostHandler) Detail(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		RenderNotFound(c, "Post not found")
		return
	}

	var post models.Post
	if err := h.db.Preload("User").First(&post, postID).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	var comments []models.Comment
	h.db.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments)

	type commentView struct {
		models.Comment
		ContentHTML template.HTML
	}

	views := make([]commentView, len(comments))
	for i, comment := range comments {
		views[i] = commentView{
			Comment:     comment,
			ContentHTML: utils.RenderMarkdown(comment.Content),
		}
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Title":       post.Title,
		"Post":        post,
		"PostContent": utils.RenderMarkdown(post.Content),
		"Comments":    views,
	})
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var post models.Post
	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		RenderNotFound(c, "Post not found")
		return
	}
	if err := h.db.First(&post, postID).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	if post.UserID != user.ID {
		RenderForbidden(c, "Only the author can edit this post")
		return
	}

	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title": "Edit Post",
		"Post":  post,
	})
}

// Update replaces the content only. The title is fixed at creation.
func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var post models.Post
	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		RenderNotFound(c, "Post not found")
		return
	}
	if err := h.db.First(&post, postID).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	if post.UserID != user.ID {
		RenderForbidden(c, "Only the author can edit this post")
		return
	}

	content := c.PostForm("content")
	if err := h.db.Model(&post).Update("content", content).Error; err != nil {
		h.logger.Error("post update failed", zap.Uint("post_id", post.ID), zap.Error(err))
		Render(c, http.StatusInternalServerError, "post/edit.html", gin.H{
			"Title": "Edit Post",
			"Post":  post,
			"Error": "Could not save the post",
		})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// CreateComment appends a comment, optionally threaded under a parent
// comment. Both the post and the parent must exist before the insert.
func (h *PostHandler) CreateComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		RenderNotFound(c, "Post not found")
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		RenderNotFound(c, "Post not found")
		return
	}

	detailPath := fmt.Sprintf("/post/%d", post.ID)

	content := c.PostForm("content")
	if content == "" {
		c.Redirect(http.StatusFound, detailPath)
		return
	}

	var parentID *uint
	if parentIDStr := c.PostForm("parent_id"); parentIDStr != "" {
		id := utils.StringToUint(parentIDStr)

		var parent models.Comment
		if id == 0 || h.db.First(&parent, id).Error != nil {
			SetFlash(c, "The comment you replied to no longer exists")
			c.Redirect(http.StatusFound, detailPath)
			return
		}
		parentID = &id
	}

	comment := models.Comment{
		PostID:   post.ID,
		UserID:   user.ID,
		Content:  content,
		ParentID: parentID,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		h.logger.Error("comment creation failed", zap.Uint("post_id", post.ID), zap.Error(err))
	}

	c.Redirect(http.StatusFound, detailPath)
}
