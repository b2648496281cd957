package config

import (
	"github.com/spf13/viper"
)

// Config carries everything the process needs at startup. It is built once
// in main and handed to the pieces that need it, there are no package-level
// settings.
type Config struct {
	Port          string
	SessionSecret string
	DatabaseURL   string // postgres DSN; sqlite file is used when empty
	SQLitePath    string
	LogLevel      string
	TemplatesDir  string
	StaticDir     string
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("SESSION_SECRET", "secret_key_change_me")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "miniblog.sqlite3")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")

	return &Config{
		Port:          v.GetString("PORT"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		TemplatesDir:  v.GetString("TEMPLATES_DIR"),
		StaticDir:     v.GetString("STATIC_DIR"),
	}
}
