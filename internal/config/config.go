package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	ListenAddr     string   `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8008"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3001,http://127.0.0.1:3001"`
	Debug          bool     `env:"DEBUG" envDefault:"false"`

	// Database
	MongoURL  string `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	MongoName string `env:"MONGODB_NAME" envDefault:"yatav_training"`
	RedisURL  string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	// Security
	JWTSecret          string `env:"JWT_SECRET" envDefault:"yatav-super-secret-key-change-in-production"`
	TokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`

	// LLM providers. All credentials are optional: with none set the
	// service runs in pure demo mode.
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-4"`
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
