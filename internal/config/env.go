package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFiles are loaded into the process environment before BANK_* variables
// are read. Missing files are ignored; variables already set win.
var envFiles = []string{".env"}

// parseEnv overlays cfg with BANK_* environment variables.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	if v, ok := os.LookupEnv("BANK_STORE_PATH"); ok {
		cfg.StorePath = v
	}
	if v, ok := os.LookupEnv("BANK_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := os.LookupEnv("BANK_CURRENCY"); ok {
		cfg.Currency = v
	}
	if v, ok := os.LookupEnv("BANK_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("BANK_ALLOW_OVERDRAFT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BANK_ALLOW_OVERDRAFT: %w", err)
		}
		cfg.AllowOverdraft = b
	}
	if v, ok := os.LookupEnv("BANK_MAX_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BANK_MAX_ATTEMPTS: %w", err)
		}
		cfg.MaxAttempts = n
	}
	if v, ok := os.LookupEnv("BANK_FAILURE_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BANK_FAILURE_DELAY: %w", err)
		}
		cfg.FailureDelay = d
	}
	if v, ok := os.LookupEnv("BANK_LOCKOUT_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BANK_LOCKOUT_DELAY: %w", err)
		}
		cfg.LockoutDelay = d
	}
	return nil
}
