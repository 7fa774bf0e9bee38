package commons

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	PostgresConn    string
	ServerPort      uint16
	DefaultPageSize int
	MaxPageSize     int
	RateLimitRPS    float64
	RateLimitBurst  int
	LogToDatabase   bool
}

var requiredKeys = []string{
	"POSTGRES_USER",
	"POSTGRES_PASSWORD",
	"POSTGRES_HOST",
	"POSTGRES_PORT",
	"POSTGRES_NAME",
	"SERVER_PORT",
}

// LoadConfig reads the configuration from the environment. Callers load
// .env files beforehand.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DEFAULT_PAGE_SIZE", DefaultPageSize)
	v.SetDefault("MAX_PAGE_SIZE", DefaultMaxPageSize)
	v.SetDefault("RATE_LIMIT_RPS", DefaultRateLimit)
	v.SetDefault("RATE_LIMIT_BURST", DefaultRateBurst)
	v.SetDefault("LOG_TO_DATABASE", true)

	var config Config
	var errors []string

	for _, key := range requiredKeys {
		if v.GetString(key) == "" {
			errors = append(errors, fmt.Sprintf("%s is not set", key))
		}
	}

	config.PostgresConn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		v.GetString("POSTGRES_USER"), v.GetString("POSTGRES_PASSWORD"),
		v.GetString("POSTGRES_HOST"), v.GetString("POSTGRES_PORT"), v.GetString("POSTGRES_NAME"))

	if v.GetString("SERVER_PORT") != "" {
		port, err := parsePort(v.GetString("SERVER_PORT"))
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid SERVER_PORT: %s", err))
		} else {
			config.ServerPort = port
		}
	}

	config.DefaultPageSize = v.GetInt("DEFAULT_PAGE_SIZE")
	config.MaxPageSize = v.GetInt("MAX_PAGE_SIZE")
	if config.DefaultPageSize < 1 {
		errors = append(errors, "DEFAULT_PAGE_SIZE must be positive")
	}
	if config.MaxPageSize < config.DefaultPageSize {
		errors = append(errors, "MAX_PAGE_SIZE must not be below DEFAULT_PAGE_SIZE")
	}

	config.RateLimitRPS = v.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimitBurst = v.GetInt("RATE_LIMIT_BURST")
	if config.RateLimitRPS <= 0 || config.RateLimitBurst < 1 {
		errors = append(errors, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	config.LogToDatabase = v.GetBool("LOG_TO_DATABASE")

	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Println("Configuration Error:", err)
		}
		return Config{}, fmt.Errorf("configuration errors occurred")
	}

	return config, nil
}

func parsePort(raw string) (uint16, error) {
	port, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(port), nil
}
