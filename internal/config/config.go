package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AuditNone     = "none"
	AuditMySQL    = "mysql"
	AuditPostgres = "postgres"
)

type Config struct {
	Port           string   `yaml:"port"`
	LogLevel       string   `yaml:"log_level"`
	AuditDriver    string   `yaml:"audit_driver"`
	MySQLURL       string   `yaml:"mysql_url"`
	PostgresURL    string   `yaml:"postgres_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads, lowest precedence first: defaults, the YAML file named by
// CASHIER_CONFIG, a .env file, the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           "8080",
		LogLevel:       "info",
		AuditDriver:    AuditNone,
		AllowedOrigins: []string{"*"},
	}

	if path := os.Getenv("CASHIER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.AuditDriver = strings.ToLower(getEnv("AUDIT_DRIVER", cfg.AuditDriver))
	cfg.MySQLURL = getEnv("MYSQL_URL", cfg.MySQLURL)
	cfg.PostgresURL = getEnv("DATABASE_URL", cfg.PostgresURL)
	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(v)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.AuditDriver {
	case AuditNone:
	case AuditMySQL:
		if c.MySQLURL == "" {
			return fmt.Errorf("AUDIT_DRIVER=mysql requires MYSQL_URL")
		}
	case AuditPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("AUDIT_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown AUDIT_DRIVER %q", c.AuditDriver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
