package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

type Config struct {
	Port string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	AutoMigrate      bool

	SecretKey       string
	Debug           bool
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// CommonPasswordsFile optionally extends the built-in common password list.
	CommonPasswordsFile string

	CORSAllowedOrigins []string

	CurrencyAPIURL  string
	CurrencyAPIKey  string
	CurrencyTimeout time.Duration

	OperatorWorkers int
}

// ProcessEnvironmentVariables builds the Config from the environment. A .env
// file in the working directory is loaded first when present; variables already
// set in the environment win over it.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:             getEnv("PORT", "9446"),
		PostgresAddress:  getEnv("POSTGRES_ADDRESS", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5433"),
		PostgresDB:       getEnv("POSTGRES_DB", "postgres"),
		PostgresUsername: getEnv("POSTGRES_USERNAME", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "testpassword"),
		AutoMigrate:      getEnvBool("AUTO_MIGRATE", true),

		SecretKey:       os.Getenv("SECRET_KEY"),
		Debug:           getEnvBool("DEBUG", false),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		CommonPasswordsFile: os.Getenv("COMMON_PASSWORDS_FILE"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		CurrencyAPIURL:  getEnv("CURRENCY_API_URL", "https://api.currencylayer.com/convert"),
		CurrencyAPIKey:  os.Getenv("CURRENCY_API_KEY"),
		CurrencyTimeout: getEnvDuration("CURRENCY_TIMEOUT", 10*time.Second),

		OperatorWorkers: getEnvInt("OPERATOR_WORKERS", 4),
	}

	return &env, nil
}

// PostgresURL returns the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SecretKey == "" {
		problems = append(problems, "SECRET_KEY is required")
	} else if !c.Debug && len(c.SecretKey) < minSecretKeyLength {
		problems = append(problems, fmt.Sprintf("SECRET_KEY must be at least %d bytes outside debug mode", minSecretKeyLength))
	}

	if c.AccessTokenTTL <= 0 {
		problems = append(problems, "ACCESS_TOKEN_TTL must be positive")
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		problems = append(problems, "REFRESH_TOKEN_TTL must not be shorter than ACCESS_TOKEN_TTL")
	}

	if parsed, err := url.Parse(c.CurrencyAPIURL); err != nil || parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid CURRENCY_API_URL '%s'", c.CurrencyAPIURL))
	} else if !c.Debug && parsed.Scheme != "https" {
		problems = append(problems, "CURRENCY_API_URL must use https outside debug mode")
	}
	if c.CurrencyTimeout <= 0 {
		problems = append(problems, "CURRENCY_TIMEOUT must be positive")
	}

	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Sprintf("invalid OPERATOR_WORKERS %d: must be at least 1", c.OperatorWorkers))
	}

	for _, origin := range c.CORSAllowedOrigins {
		if parsed, err := url.Parse(origin); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			problems = append(problems, fmt.Sprintf("invalid CORS origin '%s'", origin))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
