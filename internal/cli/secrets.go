package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/supraja777/multiagent/internal/config"
)

// SecretReader reads a secret after showing prompt.
type SecretReader func(prompt string) (string, error)

// TerminalSecretReader reads secrets from in without echo. It returns nil
// when in is not a terminal, so callers never block on a pipe.
func TerminalSecretReader(in *os.File, out io.Writer) SecretReader {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
}

// promptMissingKeys asks for the API keys the configuration lacks.
// The search key is optional: an empty answer leaves the researcher
// without web access.
func promptMissingKeys(cfg *config.Config, read SecretReader) error {
	if read == nil {
		return nil
	}
	if cfg.Gateway.APIKey == "" {
		key, err := read(fmt.Sprintf("%s: ", cfg.GatewayKeyEnv()))
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		cfg.Gateway.APIKey = key
	}
	if cfg.Tools.Search.APIKey == "" {
		key, err := read("TAVILY_API_KEY (optional): ")
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		cfg.Tools.Search.APIKey = key
	}
	return nil
}
