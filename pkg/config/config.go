package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for petvizor-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys, database password) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// Database configuration (PostgreSQL, exchange history)
	Database DatabaseConfig `yaml:"database"`

	// Knowledge base source (Google Sheets)
	Sheets SheetsConfig `yaml:"sheets"`

	// Language model configuration
	AI AIConfig `yaml:"ai"`

	// Consultation engine tuning
	Consultation ConsultationConfig `yaml:"consultation"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// EnableVerification controls whether JWT signatures are validated.
	// Set to false for local development without an auth server.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWKSEndpointsStr is a comma-separated list of issuer=jwks_url pairs.
	// Format: "issuer1=url1,issuer2=url2"
	JWKSEndpointsStr string `yaml:"jwks_endpoints" env:"JWKS_ENDPOINTS" env-default:""`

	// JWKSEndpoints is the parsed map from JWKSEndpointsStr (not from config file).
	JWKSEndpoints map[string]string `yaml:"-"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"petvizor"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"petvizor"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// SheetsConfig holds the Google Sheets knowledge base source configuration.
type SheetsConfig struct {
	// SpreadsheetID identifies the knowledge base spreadsheet.
	// If empty, the engine starts with an empty knowledge base.
	SpreadsheetID string `yaml:"spreadsheet_id" env:"SHEETS_SPREADSHEET_ID" env-default:""`

	// APIKey authorizes read access to the spreadsheet.
	APIKey string `yaml:"-" env:"SHEETS_API_KEY"` // Secret - not in YAML

	// TablesStr is a comma-separated list of sheet tab names to ingest.
	// Empty means the full built-in table registry.
	TablesStr string `yaml:"tables" env:"SHEETS_TABLES" env-default:""`

	// Tables is the parsed list from TablesStr (not from config file).
	Tables []string `yaml:"-"`

	// FetchTimeout bounds a single sheet fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"SHEETS_FETCH_TIMEOUT" env-default:"10s"`
}

// AIConfig holds language model configuration.
// The credential is optional: without one the engine answers with
// deterministic fallback text instead of calling a model.
type AIConfig struct {
	// Provider selects the chat backend: "openai", "anthropic".
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`

	// Endpoint is the base URL for OpenAI-compatible endpoints.
	// Ignored by the anthropic provider.
	Endpoint string `yaml:"endpoint" env:"AI_ENDPOINT" env-default:"https://api.openai.com/v1"`

	Model string `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o-mini"`

	OpenAIKey    string `yaml:"-" env:"OPENAI_API_KEY"`    // Secret - not in YAML
	AnthropicKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML

	// Timeout bounds one chat completion call. On timeout the engine
	// falls back to canned text, it never fails the request.
	Timeout     time.Duration `yaml:"timeout" env:"AI_TIMEOUT" env-default:"30s"`
	Temperature float64       `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.4"`
}

// HasCredential reports whether a credential is configured for the
// selected provider.
func (c *AIConfig) HasCredential() bool {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicKey != ""
	default:
		return c.OpenAIKey != ""
	}
}

// ConsultationConfig holds consultation engine tuning knobs.
type ConsultationConfig struct {
	// CacheTTL is the knowledge cache validity window.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CONSULTATION_CACHE_TTL" env-default:"5m"`

	// TopK bounds the number of knowledge records fed into the prompt.
	TopK int `yaml:"top_k" env:"CONSULTATION_TOP_K" env-default:"8"`

	// HistoryLimit caps conversation turns reconstructed from stored exchanges.
	HistoryLimit int `yaml:"history_limit" env:"CONSULTATION_HISTORY_LIMIT" env-default:"10"`

	// MaxHistoryTurns caps caller-supplied conversation history before
	// prompt composition.
	MaxHistoryTurns int `yaml:"max_history_turns" env:"CONSULTATION_MAX_HISTORY_TURNS" env-default:"40"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	cfg.parseComplexFields()
	return cfg, nil
}

// parseComplexFields handles fields that need post-processing after loading.
func (c *Config) parseComplexFields() {
	c.Auth.JWKSEndpoints = parseJWKSEndpoints(c.Auth.JWKSEndpointsStr)
	c.Sheets.Tables = splitTrimmed(c.Sheets.TablesStr)
}

// parseJWKSEndpoints parses the JWKS endpoints string into a map.
// Format: "issuer1=url1,issuer2=url2"
func parseJWKSEndpoints(value string) map[string]string {
	endpoints := make(map[string]string)
	if value == "" {
		return endpoints
	}

	pairs := strings.Split(value, ",")
	for _, pair := range pairs {
		parts := strings.Split(pair, "=")
		if len(parts) == 2 {
			endpoints[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return endpoints
}

// splitTrimmed splits a comma-separated list, dropping empty entries.
func splitTrimmed(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
