package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"8080"`
	Secret     string `env:"SECRET,required"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	BcryptHasherCost int `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PasswordResetValidDuration     time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetRequestsPerMinute uint16        `env:"PASSWORD_RESET_REQUESTS_PER_MINUTE" envDefault:"5"`
	ResetSessionTTL                time.Duration `env:"RESET_SESSION_TTL" envDefault:"1h"`

	SecurityEventsExchange string `env:"SECURITY_EVENTS_EXCHANGE" envDefault:"security-events"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	EmailSender           string `env:"EMAIL_SENDER,required"`
	PasswordResetTemplate string `env:"PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`
	PasswordResetBaseURL  string `env:"PASSWORD_RESET_BASE_URL,required"`

	AwsRegion          string `env:"AWS_REGION" envDefault:"eu-west-1"`
	AwsAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AwsSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
