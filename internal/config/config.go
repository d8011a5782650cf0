package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config agrega toda a configuração da aplicação, carregada do ambiente
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"escutivel"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	AuthBaseURL   string `env:"AUTH_BASE_URL"`
	AuthAPIKey    string `env:"AUTH_API_KEY"`
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string `env:"SMTP_USER"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	SMTPFromName  string `env:"SMTP_FROM_NAME" envDefault:"Escutivel"`
	SMTPFromEmail string `env:"SMTP_FROM_EMAIL"`
	LeaderEmail   string `env:"LEADER_EMAIL"`

	S3BucketName string `env:"S3_BUCKET_NAME"`
	S3Region     string `env:"S3_REGION" envDefault:"us-east-1"`

	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:3000"`

	PendingMatriculationDays int `env:"PENDING_MATRICULATION_DAYS" envDefault:"30"`
}

// LoadConfig carrega a configuração a partir das variáveis de ambiente
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}
	return cfg, nil
}

// GetDBConnString devolve a string de ligação ao Postgres
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// IsProduction indica se a aplicação corre em produção; controla, entre
// outros, a flag Secure do cookie de sessão
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
