// Package config reads the config file and environment and hands the rest
// of the application a validated Config.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds everything the server needs at startup.
type Config struct {
	LogLevel string
	GinMode  string
	Port     int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	CORSOrigins []string

	// AllowDuplicateClaims controls whether one user may file several claims
	// against the same found item.
	AllowDuplicateClaims bool
}

// Load parses flags, reads config.toml (optional) and environment variables,
// applies defaults and returns the validated configuration.
func Load() (*Config, error) {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	v.BindEnv("app.log_level", "APP_LOG_LEVEL")
	v.BindEnv("app.gin_mode", "GIN_MODE")
	v.BindEnv("host.port", "HOST_PORT")

	v.BindEnv("db.host", "DB_HOST")
	v.BindEnv("db.port", "DB_PORT")
	v.BindEnv("db.user", "DB_USER")
	v.BindEnv("db.password", "DB_PASSWORD")
	v.BindEnv("db.name", "DB_NAME")

	v.BindEnv("jwt.secret", "JWT_SECRET")

	v.BindEnv("smtp.host", "SMTP_HOST")
	v.BindEnv("smtp.port", "SMTP_PORT")
	v.BindEnv("smtp.user", "SMTP_USER")
	v.BindEnv("smtp.password", "SMTP_PASS")
	v.BindEnv("smtp.from", "SMTP_FROM")

	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.gin_mode", "debug")
	v.SetDefault("host.port", 8080)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "lostfound")
	v.SetDefault("db.name", "lost_and_found")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("cors.origins", []string{"http://localhost:5173"})
	v.SetDefault("claims.allow_duplicate", true)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional as long as the environment covers
		// the required values.
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return nil, errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return nil, errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		return nil, errors.New("jwt.secret must be set (JWT_SECRET)")
	}

	return &Config{
		LogLevel:             v.GetString("app.log_level"),
		GinMode:              v.GetString("app.gin_mode"),
		Port:                 v.GetInt("host.port"),
		DBHost:               v.GetString("db.host"),
		DBPort:               v.GetInt("db.port"),
		DBUser:               v.GetString("db.user"),
		DBPassword:           v.GetString("db.password"),
		DBName:               v.GetString("db.name"),
		JWTSecret:            v.GetString("jwt.secret"),
		SMTPHost:             v.GetString("smtp.host"),
		SMTPPort:             v.GetInt("smtp.port"),
		SMTPUser:             v.GetString("smtp.user"),
		SMTPPassword:         v.GetString("smtp.password"),
		MailFrom:             v.GetString("smtp.from"),
		CORSOrigins:          v.GetStringSlice("cors.origins"),
		AllowDuplicateClaims: v.GetBool("claims.allow_duplicate"),
	}, nil
}
