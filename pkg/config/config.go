package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App holds configuration for the API server binary.
type App struct {
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`

	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"1440"`

	// Network
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8000"`
	ClientOrigin string `envconfig:"CLIENT_ORIGIN" default:"http://localhost:3000"`

	// RabbitMQ for publishing session events; empty disables publishing
	RabbitURL       string `envconfig:"RABBIT_URL"`
	SessionExchange string `envconfig:"SESSION_EXCHANGE" default:"session.exchange"`

	// Cookies
	SecureCookies bool `envconfig:"SECURE_COOKIES" default:"false"`
}

func Load() (App, error) {
	_ = godotenv.Load()
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
