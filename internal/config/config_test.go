package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "NODE_ENV", "LOG_LEVEL", "GEMINI_API_KEY", "GEMINI_MODEL",
		"SEARCH_API_KEY", "SEARCH_ENGINE_ID", "ADMIN_API_TOKEN",
		"RESOURCE_ROOT", "PROJECT_ROOT", "FRONTEND_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got %s", cfg.Environment)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("expected default model, got %s", cfg.GeminiModel)
	}
	if cfg.ResourceRoot != "./public/resources" {
		t.Errorf("expected default resource root, got %s", cfg.ResourceRoot)
	}
	if cfg.IsProduction() {
		t.Error("default config should not be production")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("SEARCH_API_KEY", "search-key")
	t.Setenv("SEARCH_ENGINE_ID", "cse-123")
	t.Setenv("ADMIN_API_TOKEN", "admin-secret")
	t.Setenv("FRONTEND_URL", "https://app.learnflow.example.edu")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("expected custom gemini key, got %s", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("expected custom model, got %s", cfg.GeminiModel)
	}
	if cfg.SearchEngineID != "cse-123" {
		t.Errorf("expected custom engine id, got %s", cfg.SearchEngineID)
	}
	if len(cfg.FrontendOrigins) != 1 || cfg.FrontendOrigins[0] != "https://app.learnflow.example.edu" {
		t.Errorf("unexpected frontend origins: %v", cfg.FrontendOrigins)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "notanumber")

	cfg := Load()

	if cfg.Port != 5000 {
		t.Errorf("expected default port on invalid value, got %d", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.GeminiAPIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing GEMINI_API_KEY")
	}

	cfg.GeminiAPIKey = "k"
	cfg.Port = 5000
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Port = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative port")
	}
}
