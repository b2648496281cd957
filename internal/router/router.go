package router

import (
	"miniblog/internal/handlers"
	"miniblog/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterRoutes wires every handler onto the engine. The database and
// logger are injected here once, handlers hold no global state.
func RegisterRoutes(r *gin.Engine, database *gorm.DB, logger *zap.Logger) {
	pageHandler := handlers.NewPageHandler()
	authHandler := handlers.NewAuthHandler(database, logger)
	postHandler := handlers.NewPostHandler(database, logger)
	userHandler := handlers.NewUserHandler(database)
	notificationHandler := handlers.NewNotificationHandler(database)

	// Public routes
	r.GET("/", pageHandler.Index)
	r.GET("/landing", pageHandler.Landing)
	r.GET("/post/:id", postHandler.Detail)
	r.GET("/user/:username", userHandler.Profile)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/home", postHandler.Home)
		authorized.GET("/logout", authHandler.Logout)
		authorized.GET("/create_post", postHandler.ShowCreate)
		authorized.POST("/create_post", postHandler.Create)
		authorized.GET("/post/:id/edit", postHandler.ShowEdit)
		authorized.POST("/post/:id/edit", postHandler.Update)
		authorized.POST("/post/:id/comment", postHandler.CreateComment)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notification/:id/read", notificationHandler.Read)
	}
}
