package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Env  string `envconfig:"APP_ENV" default:"dev"`
	Port string `envconfig:"PORT" default:"8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"uslugi.db"`
	RedisAddr   string `envconfig:"REDIS_ADDR"`

	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireHrs int    `envconfig:"JWT_EXPIRE_HRS" default:"24"`

	// External AI service for moderation, embeddings and category hints.
	AIBaseURL string `envconfig:"AI_BASE_URL"`
	AIAPIKey  string `envconfig:"AI_API_KEY"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`

	PostLifetimeDays int `envconfig:"POST_LIFETIME_DAYS" default:"30"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
