package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" env-default:":8080"`
	GinMode       string        `env:"GIN_MODE" env-default:"debug"`
	LogLevel      string        `env:"LOG_LEVEL" env-default:"INFO"`
	DBDriver      string        `env:"DB_DRIVER" env-default:"mysql"`
	DBHost        string        `env:"DB_HOST" env-default:"localhost"`
	DBPort        string        `env:"DB_PORT" env-default:"3306"`
	DBUser        string        `env:"DB_USER" env-default:"timesheet"`
	DBPassword    string        `env:"DB_PASSWORD" env-default:"timesheet"`
	DBName        string        `env:"DB_NAME" env-default:"timesheet"`
	DBSSLMode     string        `env:"DB_SSLMODE" env-default:"disable"`
	RedisHost     string        `env:"REDIS_HOST"`
	RedisPort     string        `env:"REDIS_PORT" env-default:"6379"`
	SessionSecret string        `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`
	JWTSecret     string        `env:"JWT_SECRET" env-default:"default-jwt-secret-change-me"`
	JWTExpiry     time.Duration `env:"JWT_EXPIRY" env-default:"168h"`
	Timezone      string        `env:"TIMEZONE" env-default:"Local"`
	SeedDefaults  bool          `env:"SEED_DEFAULTS" env-default:"true"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch cfg.DBDriver {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves the timezone used for day boundaries, the curfew and report layout.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost,
			c.DBPort,
			c.DBUser,
			c.DBPassword,
			c.DBName,
			c.DBSSLMode,
		)
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// RedisAddr returns host:port, or "" when sessions should stay in cookies.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}
