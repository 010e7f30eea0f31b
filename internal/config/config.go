package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the app.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	SessionFile    string
	JWTSecret      string
	TokenTTL       time.Duration
	RabbitMQURL    string // Empty disables inventory events
	PasswordHasher string
	LogFile        string
	LogMaxSizeMB   int
	LogMaxFiles    int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "swiftstock.db")
	v.SetDefault("SESSION_FILE", "swiftstock_session.toml")
	v.SetDefault("JWT_SECRET", "swiftstock_local_secret")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("PASSWORD_HASHER", "sha256")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("LOG_MAX_FILES", 5)
}

// Load reads the configuration from defaults, environment variables and, when
// configFile is not empty, a config file.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		SessionFile:    v.GetString("SESSION_FILE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		PasswordHasher: strings.ToLower(v.GetString("PASSWORD_HASHER")),
		LogFile:        v.GetString("LOG_FILE"),
		LogMaxSizeMB:   v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxFiles:    v.GetInt("LOG_MAX_FILES"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	switch c.PasswordHasher {
	case "sha256", "bcrypt":
	default:
		return fmt.Errorf("unsupported PASSWORD_HASHER %q", c.PasswordHasher)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if c.SessionFile == "" {
		return fmt.Errorf("SESSION_FILE must not be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
