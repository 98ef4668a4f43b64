package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophbank/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so only keys present in the
// file override earlier settings.
type JsonConfig struct {
	StorePath      *string         `json:"store_path"`
	Backend        *string         `json:"backend"`
	AllowOverdraft *bool           `json:"allow_overdraft"`
	Currency       *string         `json:"currency"`
	MaxAttempts    *int            `json:"max_attempts"`
	FailureDelay   *timex.Duration `json:"failure_delay"`
	LockoutDelay   *timex.Duration `json:"lockout_delay"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file at path. An empty
// path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.Backend != nil {
		cfg.Backend = *jc.Backend
	}
	if jc.AllowOverdraft != nil {
		cfg.AllowOverdraft = *jc.AllowOverdraft
	}
	if jc.Currency != nil {
		cfg.Currency = *jc.Currency
	}
	if jc.MaxAttempts != nil {
		cfg.MaxAttempts = *jc.MaxAttempts
	}
	if jc.FailureDelay != nil {
		cfg.FailureDelay = jc.FailureDelay.Duration
	}
	if jc.LockoutDelay != nil {
		cfg.LockoutDelay = jc.LockoutDelay.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
