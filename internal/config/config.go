// Package config loads and validates skillsync configuration from flags,
// environment variables, .env files and an optional config file, in that
// order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/openskills/skillsync/pkg/errors"
	"github.com/openskills/skillsync/pkg/registry"
)

// Expected identifier shapes. Organization CTIDs are ce-prefixed UUIDs;
// API keys are bare UUIDs.
const (
	orgCTIDLength = len("ce-11111111-aaaa-bbbb-cccc-000000000000")
	apiKeyLength  = len("11111111-aaaa-bbbb-cccc-000000000000")
)

// Config holds the full run configuration.
type Config struct {
	// Source catalog.
	SourceDomain string

	// Registry connection.
	RegistryEnvironment string
	OrganizationCTID    string
	APIKey              string

	// Mapping and shaping.
	DefaultLanguage string
	RatePerSecond   int
	MaxPages        int

	// Run behavior.
	DryRun     bool
	ExportPath string
}

// Load reads configuration from all sources. Flag values are expected to be
// bound into viper by the CLI before calling.
func Load() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SKILLSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("registry-env", string(registry.EnvironmentSandbox))
	viper.SetDefault("language", "en-us")
	viper.SetDefault("rate", 20)
	viper.SetDefault("max-pages", 10000)

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".skillsync")
	}
	_ = viper.ReadInConfig()

	cfg := &Config{
		SourceDomain:        viper.GetString("domain"),
		RegistryEnvironment: viper.GetString("registry-env"),
		OrganizationCTID:    viper.GetString("org-ctid"),
		APIKey:              viper.GetString("api-key"),
		DefaultLanguage:     viper.GetString("language"),
		RatePerSecond:       viper.GetInt("rate"),
		MaxPages:            viper.GetInt("max-pages"),
		DryRun:              viper.GetBool("dry-run"),
		ExportPath:          viper.GetString("out"),
	}
	return cfg, nil
}

// loadEnvFiles loads .env files if present. Missing files are not an error.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// Validate checks identifier shapes and enumerations before any network
// call is made.
func (c *Config) Validate() error {
	if c.SourceDomain == "" {
		return &errors.ValidationError{
			Field:   "domain",
			Message: "the OSMT instance domain is required (e.g. osmt.example.com)",
		}
	}

	if _, err := registry.EndpointsFor(registry.Environment(c.RegistryEnvironment)); err != nil {
		return err
	}

	if len(c.OrganizationCTID) != orgCTIDLength {
		return &errors.ValidationError{
			Field:   "org-ctid",
			Value:   c.OrganizationCTID,
			Message: "please check your CTID and try again; values are expected to be based on UUIDs",
		}
	}

	if len(c.APIKey) != apiKeyLength {
		return &errors.ValidationError{
			Field:   "api-key",
			Value:   "(redacted)",
			Message: "please check your API key and try again; values are expected to be UUIDs",
		}
	}

	if _, err := language.Parse(c.DefaultLanguage); err != nil {
		return &errors.ValidationError{
			Field:   "language",
			Value:   c.DefaultLanguage,
			Message: fmt.Sprintf("not a valid BCP 47 language tag: %v", err),
		}
	}

	if c.RatePerSecond <= 0 {
		return &errors.ValidationError{
			Field:   "rate",
			Value:   c.RatePerSecond,
			Message: "requests per second must be positive",
		}
	}

	if c.MaxPages <= 0 {
		return &errors.ValidationError{
			Field:   "max-pages",
			Value:   c.MaxPages,
			Message: "page ceiling must be positive",
		}
	}

	return nil
}

// Connection builds the registry connection from the validated config.
func (c *Config) Connection() registry.Connection {
	return registry.Connection{
		APIKey:           c.APIKey,
		Environment:      registry.Environment(c.RegistryEnvironment),
		OrganizationCTID: c.OrganizationCTID,
	}
}
