package server

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig is the top-level config of sentimentd.
type ServerConfig struct {
	// ServerPort is the TCP port the API listens on. Default: "8000".
	ServerPort string `yaml:"port"`

	Model ModelConfig `yaml:"model"`

	// CostPerInferenceUSD is attached to each analysis response,
	// for cost dashboards downstream.
	CostPerInferenceUSD float64 `yaml:"costPerInferenceUSD"`

	// HistoryDBURI is a postgres connection string.
	// Empty disables prediction history.
	HistoryDBURI string `yaml:"historyDB"`

	Admin AdminConfig `yaml:"admin"`
}

type ModelConfig struct {
	// Lexicon is a path to an external lexicon file. Empty = embedded default.
	Lexicon string `yaml:"lexicon"`

	// MaxTokens truncates longer inputs before scoring. Default: 512.
	MaxTokens int `yaml:"maxTokens"`

	// NeutralBand is the half-width of the neutral zone of the
	// normalized score. Default: 0.1 .
	NeutralBand float64 `yaml:"neutralBand"`
}

type AdminConfig struct {
	// Secret signs admin tokens (HS256). Empty disables admin endpoints.
	Secret string `yaml:"secret"`

	// TokenExpiry bounds the validity of minted admin tokens. Default: 24h.
	TokenExpiry time.Duration `yaml:"-"`
}

var ErrInvalidTokenExpiry = errors.New("server: admin.tokenExpiry is invalid")

func (a *AdminConfig) UnmarshalYAML(node *yaml.Node) error {
	raw := struct {
		Secret      string `yaml:"secret"`
		TokenExpiry string `yaml:"tokenExpiry"`
	}{}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	a.Secret = raw.Secret
	if raw.TokenExpiry == "" {
		return nil
	}

	expiry, err := time.ParseDuration(raw.TokenExpiry)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTokenExpiry, raw.TokenExpiry)
	}
	if expiry <= 0 {
		return fmt.Errorf("%w: not positive: %s", ErrInvalidTokenExpiry, raw.TokenExpiry)
	}
	a.TokenExpiry = expiry
	return nil
}

// AdminEnabled tells whether admin endpoints should be registered.
func (c *ServerConfig) AdminEnabled() bool {
	return c.Admin.Secret != ""
}

// HistoryEnabled tells whether predictions should be persisted.
func (c *ServerConfig) HistoryEnabled() bool {
	return c.HistoryDBURI != ""
}
