package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	Environment     string // "development" or "production"
	LogLevel        string
	GeminiAPIKey    string
	GeminiModel     string
	SearchAPIKey    string
	SearchEngineID  string
	AdminAPIToken   string
	ResourceRoot    string
	ProjectRoot     string
	FrontendOrigins []string
}

func Load() Config {
	return Config{
		Port:           envInt("PORT", 5000),
		Environment:    envStr("NODE_ENV", "development"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		GeminiAPIKey:   envStr("GEMINI_API_KEY", ""),
		GeminiModel:    envStr("GEMINI_MODEL", "gemini-2.0-flash"),
		SearchAPIKey:   envStr("SEARCH_API_KEY", ""),
		SearchEngineID: envStr("SEARCH_ENGINE_ID", ""),
		AdminAPIToken:  envStr("ADMIN_API_TOKEN", ""),
		ResourceRoot:   envStr("RESOURCE_ROOT", "./public/resources"),
		ProjectRoot:    envStr("PROJECT_ROOT", "."),
		FrontendOrigins: []string{
			envStr("FRONTEND_URL", "https://learnflow.example.edu"),
		},
	}
}

// Validate checks the configuration required for real upstream calls.
// A missing search key is fine (the simulated provider takes over);
// a missing Gemini key is not.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
