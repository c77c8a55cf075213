package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// InterpreterConfig describes how to run code of one language. The code is
// written to the interpreter's standard input.
type InterpreterConfig struct {
	Language    string            `yaml:"language" json:"language"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of interpreters.yaml
type ConfigFile struct {
	Interpreters []InterpreterConfig `yaml:"interpreters" json:"interpreters"`
}

// DefaultInterpreters is used when no interpreter file is configured.
func DefaultInterpreters() map[string]InterpreterConfig {
	return map[string]InterpreterConfig{
		"python": {
			Language:    "python",
			Command:     "python3",
			Args:        []string{"-"},
			Description: "Python 3; print results to stdout",
		},
	}
}

// LoadInterpreters reads a configuration file (YAML or JSON) and returns a
// map of language names to configs. A missing file yields the defaults.
func LoadInterpreters(path string) (map[string]InterpreterConfig, error) {
	if path == "" {
		return DefaultInterpreters(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultInterpreters(), nil
		}
		return nil, fmt.Errorf("failed to read interpreters config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	out := make(map[string]InterpreterConfig)
	for _, in := range cfg.Interpreters {
		if in.Language == "" || in.Command == "" {
			continue
		}
		out[strings.ToLower(in.Language)] = in
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s declares no usable interpreter", filepath.Base(path))
	}
	return out, nil
}
