// Package config loads application configuration from environment variables
// and an optional config file.
//
// PRECEDENCE (highest wins):
//  1. Real environment variables (DOGADOPT_SERVER_ADDR=...)
//  2. Values from a .env file in the working directory (dev convenience)
//  3. config.yaml in the working directory, if present
//  4. Defaults set below
//
// Viper handles 1, 3 and 4; the tiny .env loader handles 2 without pulling
// in another dependency.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret  string
		BcryptCost int
	}
	RateLimit struct {
		Requests int
		Window   time.Duration
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables and optional config files.
//
// It fails fast when the JWT secret is missing — a server that silently
// starts without one would accept no logins and issue no tokens, which is
// much harder to diagnose at request time than at startup.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("DOGADOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("database.path", "data/adoption.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.bcryptcost", 12)
	v.SetDefault("ratelimit.requests", 100)
	v.SetDefault("ratelimit.window", 15*time.Minute)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return Config{}, errors.New("config: DOGADOPT_AUTH_JWTSECRET must be set")
	}

	return cfg, nil
}

// loadDotEnv reads KEY=VALUE pairs from a .env file into the process
// environment. Real environment variables are never overwritten.
func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
