package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort         string   `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL      string   `env:"DATABASE_URL,required"`
	DirectoryBaseURL string   `env:"DIRECTORY_BASE_URL,required"`
	DirectoryAPIKey  string   `env:"DIRECTORY_API_KEY"`
	CrisisWebhookURL string   `env:"CRISIS_WEBHOOK_URL"`
	CrisisAPIKey     string   `env:"CRISIS_API_KEY"`
	JWTSecret        string   `env:"JWT_SECRET"`
	RedisAddr        string   `env:"REDIS_ADDR"`
	RedisPassword    string   `env:"REDIS_PASSWORD"`
	RedisDB          int      `env:"REDIS_DB" envDefault:"0"`
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	FindRateMax      int      `env:"MATCH_FIND_RATE_MAX" envDefault:"10"`
	FindRateWindowS  int      `env:"MATCH_FIND_RATE_WINDOW_SECONDS" envDefault:"60"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
