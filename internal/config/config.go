// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

// Package config loads server configuration from defaults, an optional
// YAML file, command-line flags, and environment fallbacks, in that
// order of increasing precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Default values.
const (
	DefaultAddr        = "127.0.0.1:4000"
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultTokenTTL    = time.Hour
	DefaultBcryptCost  = 6
	DefaultLogFormat   = "json"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds listener addresses.
type ServerConfig struct {
	// Addr is the GraphQL HTTP listen address.
	Addr string `koanf:"addr"`
	// MetricsAddr is the metrics/health listen address. Empty disables
	// the observability server.
	MetricsAddr string `koanf:"metrics_addr"`
}

// DatabaseConfig holds the storage connection settings.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// AuthConfig holds token and hashing settings.
type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string `koanf:"format"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        DefaultAddr,
			MetricsAddr: DefaultMetricsAddr,
		},
		Auth: AuthConfig{
			TokenTTL:   DefaultTokenTTL,
			BcryptCost: DefaultBcryptCost,
		},
		Log: LogConfig{
			Format: DefaultLogFormat,
		},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"addr":         "server.addr",
	"metrics-addr": "server.metrics_addr",
	"database-url": "database.url",
	"jwt-secret":   "auth.jwt_secret",
	"token-ttl":    "auth.token_ttl",
	"bcrypt-cost":  "auth.bcrypt_cost",
	"log-format":   "log.format",
}

// RegisterFlags declares the configuration flags on a flag set. The
// flag defaults mirror Default(); Load gives explicitly changed flags
// precedence over file values.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("addr", DefaultAddr, "GraphQL HTTP listen address")
	flags.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	flags.String("database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flags.String("jwt-secret", "", "token signing secret (or JWT_SECRET env)")
	flags.Duration("token-ttl", DefaultTokenTTL, "identity token lifetime")
	flags.Int("bcrypt-cost", DefaultBcryptCost, "bcrypt work factor")
	flags.String("log-format", DefaultLogFormat, "log format (json or text)")
}

// Load builds the configuration. path is an optional YAML file; flags
// is an optional flag set registered via RegisterFlags. DATABASE_URL
// and JWT_SECRET fall back to the environment when not set elsewhere,
// so secrets can stay out of files and argv.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, oops.Code("CONFIG_FILE_INVALID").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return cfg, oops.Code("CONFIG_FLAGS_INVALID").Wrap(err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration is complete and consistent.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Server.Addr == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.Database.URL == "" {
		problems = append(problems, "database.url is required (flag, file, or DATABASE_URL)")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required (flag, file, or JWT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		problems = append(problems, "log.format must be 'json' or 'text'")
	}

	if len(problems) > 0 {
		return oops.Code("CONFIG_INVALID").
			With("problems", problems).
			Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
