package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	CodEmail    string
	CodPassword string
	ProfileURL  string
	APIURL      string
	DBPath      string
	ServerPort  string
	LogLevel    string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		CodEmail:    getEnv("COD_EMAIL", ""),
		CodPassword: getEnv("COD_PASSWORD", ""),
		ProfileURL:  strings.TrimRight(getEnv("COD_PROFILE_URL", "https://profile.callofduty.com"), "/"),
		APIURL:      strings.TrimRight(getEnv("COD_API_URL", "https://my.callofduty.com"), "/"),
		DBPath:      getEnv("DB_PATH", "warzone.db"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if (cfg.CodEmail == "") != (cfg.CodPassword == "") {
		return nil, fmt.Errorf("COD_EMAIL and COD_PASSWORD must be set together")
	}

	logger.Info().
		Str("profile_url", cfg.ProfileURL).
		Str("api_url", cfg.APIURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("has_credentials", cfg.HasCredentials()).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) HasCredentials() bool {
	return c.CodEmail != "" && c.CodPassword != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
