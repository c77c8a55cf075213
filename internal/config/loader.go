package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g.
	// MULTIAGENT_GATEWAY_MODEL -> gateway.model.
	EnvPrefix = "MULTIAGENT_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Load reads configuration with the following precedence (highest first):
//  1. MULTIAGENT_* environment variables
//  2. The YAML file at path, when path is not empty
//  3. Built-in defaults
//
// API keys left empty fall back to the conventional variables
// (GROQ_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, TAVILY_API_KEY).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Gateway.Provider = strings.ToLower(strings.TrimSpace(cfg.Gateway.Provider))
	cfg.Archive.Backend = strings.ToLower(strings.TrimSpace(cfg.Archive.Backend))
	applyKeyFallbacks(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps MULTIAGENT_TOOLS_SEARCH_API_KEY to tools.search.api_key.
// Only known keys are accepted because field names contain underscores too.
func envKey(s string) string {
	flat := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for key := range defaults {
		if strings.ReplaceAll(key, ".", "_") == flat {
			return key
		}
	}
	return ""
}

func applyKeyFallbacks(cfg *Config) {
	if cfg.Gateway.APIKey == "" {
		cfg.Gateway.APIKey = os.Getenv(cfg.GatewayKeyEnv())
	}
	if cfg.Gateway.APIKey == "" && cfg.Gateway.Provider == ProviderGemini {
		cfg.Gateway.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.Tools.Search.APIKey == "" {
		cfg.Tools.Search.APIKey = os.Getenv("TAVILY_API_KEY")
	}
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, errors.New("config path is a directory")
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}
