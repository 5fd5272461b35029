package server

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadServerConfig(filepath string) (*ServerConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*ServerConfig, error) {
	out := defaultConfig()
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func defaultConfig() ServerConfig {
	return ServerConfig{
		ServerPort: "8000",
		Model: ModelConfig{
			MaxTokens:   512,
			NeutralBand: 0.1,
		},
		CostPerInferenceUSD: 0.0001,
		Admin: AdminConfig{
			TokenExpiry: 24 * time.Hour,
		},
	}
}
