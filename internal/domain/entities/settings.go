package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultProvider = "github"

// Settings is the optional configuration file of repomirror.
// Every field can be overridden from the command line.
type Settings struct {
	Provider         string `yaml:"provider"`            // "github", "gitea"
	BaseURL          string `yaml:"base_url"`            // API root, provider default when empty
	Token            string `yaml:"token"`               // Inline, ${ENV_VAR}, or file path
	Destination      string `yaml:"destination"`         // Root directory for clones
	Parallelism      int    `yaml:"parallelism"`         // 0 means one task per repository
	FailOnCloneError bool   `yaml:"fail_on_clone_error"` // Exit non-zero when any clone fails
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when no config file is found.
func NewDefaultSettings() *Settings {
	return &Settings{Provider: DefaultProvider}
}

// NewSettings reads and parses a configuration file, expanding environment variables
// and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = resolveToken(settings.Token)
	if settings.Provider == "" {
		settings.Provider = DefaultProvider
	}

	if validateErr := validateSettings(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".repomirror.yaml",
		".repomirror.yml",
		"repomirror.yaml",
		"repomirror.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
	if resolved == "" {
		return resolved
	}

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validateSettings checks the values that cannot be fixed by defaults.
func validateSettings(settings *Settings) error {
	if settings.Parallelism < 0 {
		return fmt.Errorf("parallelism must be zero or positive, got %d", settings.Parallelism)
	}
	if strings.TrimSpace(settings.Provider) == "" {
		return errors.New("provider is required")
	}
	return nil
}
