// Package config loads the multiagent configuration from a YAML file and
// MULTIAGENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Gateway providers.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Archive backends.
const (
	ArchiveNone   = "none"
	ArchiveMemory = "memory"
	ArchiveFile   = "file"
	ArchiveRedis  = "redis"
)

// Config is the complete application configuration.
type Config struct {
	Gateway      GatewayConfig      `koanf:"gateway"`
	Orchestrator OrchestratorConfig `koanf:"orchestrator"`
	Agents       AgentsConfig       `koanf:"agents"`
	Tools        ToolsConfig        `koanf:"tools"`
	Archive      ArchiveConfig      `koanf:"archive"`
	Server       ServerConfig       `koanf:"server"`
	Log          LogConfig          `koanf:"log"`
}

// GatewayConfig selects and tunes the inference provider.
type GatewayConfig struct {
	Provider    string  `koanf:"provider"`
	Model       string  `koanf:"model"`
	BaseURL     string  `koanf:"base_url"`
	APIKey      string  `koanf:"api_key"`
	Temperature float64 `koanf:"temperature"`
	// RateLimit caps requests per second. Zero disables pacing.
	RateLimit float64 `koanf:"rate_limit"`
}

// OrchestratorConfig bounds a run.
type OrchestratorConfig struct {
	MaxCycles int `koanf:"max_cycles"`
}

// AgentsConfig tunes the agents.
type AgentsConfig struct {
	MaxToolRounds int `koanf:"max_tool_rounds"`
}

// ToolsConfig configures the worker tools.
type ToolsConfig struct {
	Search SearchConfig `koanf:"search"`
	Code   CodeConfig   `koanf:"code"`
}

// SearchConfig configures the web search tool.
type SearchConfig struct {
	APIKey     string        `koanf:"api_key"`
	MaxResults int           `koanf:"max_results"`
	Timeout    time.Duration `koanf:"timeout"`
}

// CodeConfig configures the code execution tool.
type CodeConfig struct {
	Enabled          bool          `koanf:"enabled"`
	InterpretersFile string        `koanf:"interpreters_file"`
	Timeout          time.Duration `koanf:"timeout"`
	// Confirm asks before every execution in interactive sessions.
	Confirm bool `koanf:"confirm"`
}

// ArchiveConfig selects where transcripts are kept.
type ArchiveConfig struct {
	Backend   string        `koanf:"backend"`
	Dir       string        `koanf:"dir"`
	RedisAddr string        `koanf:"redis_addr"`
	TTL       time.Duration `koanf:"ttl"`
	Redact    bool          `koanf:"redact"`
}

// ServerConfig configures the HTTP and MCP surfaces.
type ServerConfig struct {
	Addr    string `koanf:"addr"`
	MCPPort int    `koanf:"mcp_port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaults are loaded before the file and the environment.
var defaults = map[string]any{
	"gateway.provider":             ProviderGroq,
	"gateway.temperature":          0.0,
	"orchestrator.max_cycles":      10,
	"agents.max_tool_rounds":       6,
	"tools.search.max_results":     2,
	"tools.search.timeout":         "20s",
	"tools.code.enabled":           true,
	"tools.code.timeout":           "30s",
	"archive.backend":              ArchiveFile,
	"archive.dir":                  ".multiagent/runs",
	"archive.redis_addr":           "localhost:6379",
	"archive.ttl":                  "0s",
	"archive.redact":               true,
	"server.addr":                  ":8080",
	"server.mcp_port":              8081,
	"log.level":                    "info",
	"log.format":                   "text",
	"gateway.model":                "",
	"gateway.base_url":             "",
	"gateway.api_key":              "",
	"gateway.rate_limit":           0.0,
	"tools.search.api_key":         "",
	"tools.code.interpreters_file": "",
	"tools.code.confirm":           false,
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Gateway.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("gateway.provider: unknown provider %q", c.Gateway.Provider))
	}
	if c.Gateway.RateLimit < 0 {
		errs = append(errs, errors.New("gateway.rate_limit must not be negative"))
	}
	if c.Orchestrator.MaxCycles < 1 {
		errs = append(errs, errors.New("orchestrator.max_cycles must be at least 1"))
	}
	if c.Agents.MaxToolRounds < 1 {
		errs = append(errs, errors.New("agents.max_tool_rounds must be at least 1"))
	}
	if c.Tools.Search.MaxResults < 1 {
		errs = append(errs, errors.New("tools.search.max_results must be at least 1"))
	}
	switch c.Archive.Backend {
	case ArchiveNone, ArchiveMemory, ArchiveFile, ArchiveRedis:
	default:
		errs = append(errs, fmt.Errorf("archive.backend: unknown backend %q", c.Archive.Backend))
	}
	if c.Archive.TTL < 0 {
		errs = append(errs, errors.New("archive.ttl must not be negative"))
	}

	return errors.Join(errs...)
}

// GatewayKeyEnv names the conventional environment variable holding the
// API key of the configured provider.
func (c *Config) GatewayKeyEnv() string {
	return strings.ToUpper(c.Gateway.Provider) + "_API_KEY"
}
