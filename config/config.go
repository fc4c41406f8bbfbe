// Package config loads server settings from command-line flags, with
// environment variables taking precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

type Config struct {
	// Address is the ip:port the HTTP server listens on.
	Address    string
	MongoURI   string
	MongoDB    string
	SigningKey string
	TokenTTL   time.Duration
	// BcryptCost is the work factor used when hashing passwords.
	BcryptCost int
	// HashConcurrency caps how many passwords are hashed at once.
	HashConcurrency int
	LogLevel        string
}

var ErrMissingSigningKey = errors.New("AUTH_SIGNING_KEY must be set")

// Load parses args (without the program name) and then applies environment overrides.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("learnhub", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "a", ":8090", "listen address")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", "mongodb://127.0.0.1:27017", "mongo connection uri")
	fs.StringVar(&cfg.MongoDB, "mongo-db", "learnhub", "mongo database name")
	fs.StringVar(&cfg.SigningKey, "signing-key", "", "token signing key")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 7*24*time.Hour, "token lifetime")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", 12, "bcrypt cost")
	fs.IntVar(&cfg.HashConcurrency, "hash-concurrency", runtime.NumCPU(), "max concurrent password hashes")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if v := os.Getenv("ADDRESS"); v != "" {
		cfg.Address = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		cfg.MongoDB = v
	}
	if v := os.Getenv("AUTH_SIGNING_KEY"); v != "" {
		cfg.SigningKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("AUTH_TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}
	if v := os.Getenv("HASH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HASH_CONCURRENCY: %w", err)
		}
		cfg.HashConcurrency = n
	}

	if cfg.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}
	return cfg, nil
}
