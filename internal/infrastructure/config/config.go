package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "issueflow/internal/shared/config"
	"issueflow/internal/shared/constants"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "change-me-in-production"

type Config struct {
	Env       string                       `mapstructure:"env"`
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Sentry    sharedConfig.SentryConfig    `mapstructure:"sentry"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (optional), a .env file (optional) and
// ISSUEFLOW_* environment variables, in increasing order of precedence.
// configPath, when set, names the config file explicitly.
func Load(env string, configPath ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("ISSUEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" {
		v.Set("env", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// CORS_ORIGIN is the comma separated origin list deployments already use.
	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		config.Server.AllowedOrigins = splitAndTrim(origins)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings that are unsafe for the selected environment.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q (use mysql, postgres or sqlite)", c.Database.Driver)
	}

	if c.Env == constants.EnvProduction && (c.Auth.JWT.Secret == "" || c.Auth.JWT.Secret == DefaultJWTSecret) {
		return fmt.Errorf("auth.jwt.secret must be set in production (ISSUEFLOW_AUTH_JWT_SECRET)")
	}

	if c.Auth.JWT.AccessExpMinutes <= 0 {
		return fmt.Errorf("auth.jwt.access_exp_minutes must be positive")
	}

	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", constants.EnvDevelopment)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "issueflow.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.password.enabled", true)
	v.SetDefault("auth.jwt.secret", DefaultJWTSecret)
	v.SetDefault("auth.jwt.access_exp_minutes", 60*24*7)

	// Email defaults; an empty smtp_host disables email notifications
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_address", "")
	v.SetDefault("email.from_name", "IssueFlow")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Registration throttle
	v.SetDefault("ratelimit.register_limit", 5)
	v.SetDefault("ratelimit.register_window", time.Hour)

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.sample_rate", 1.0)
}
