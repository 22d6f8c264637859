package config

import (
	"fmt"
	"time"
)

const (
	defaultTokenDuration        = 24 * time.Hour
	defaultServerRequestTimeout = 30 * time.Second
)

// GetServerConfig loads the merged configuration and prepares it for the
// sync server. When a token is to be issued only the token settings are
// required.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	applyServerDefaults(cfg)
	if cfg.App.IssueTokenFor != "" {
		if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
			return nil, ErrInvalidAppConfigs
		}
		return cfg, nil
	}
	return cfg, ServerConfigValid(cfg)
}

func applyServerDefaults(cfg *StructuredConfig) {
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultServerRequestTimeout
	}
}
