package main

import (
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"miniblog/internal/config"
	"miniblog/internal/db"
	"miniblog/internal/logging"
	"miniblog/internal/middleware"
	"miniblog/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from the environment")
	}

	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	r := gin.Default()

	// Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("miniblog_session", store))

	// Templates and static assets
	r.HTMLRender = loadTemplates(cfg.TemplatesDir)
	r.Static("/static", cfg.StaticDir)

	// Middleware
	r.Use(middleware.LoadUser(database))

	router.RegisterRoutes(r, database, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Each view is assembled on top of the shared layout files
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"timeAgo": func(t time.Time) string {
			seconds := int(time.Since(t).Seconds())

			if seconds < 60 {
				return "just now"
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			}
			return fmt.Sprintf("%dd ago", seconds/86400)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Manual registration to ensure keys match handler expectation
	views := []string{
		"landing.html",
		"auth/login.html",
		"auth/register.html",
		"post/list.html",
		"post/detail.html",
		"post/create.html",
		"post/edit.html",
		"user/profile.html",
		"notification/list.html",
		"403.html",
		"404.html",
	}
	for _, view := range views {
		r.AddFromFilesFuncs(view, funcMap, assemble(templatesDir+"/views/"+view)...)
	}

	return r
}
