package controllers

import (
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
	ghRepo "github.com/rios0rios0/repomirror/internal/infrastructure/repositories/github"
)

// AddPersistentFlags registers the flags shared by every subcommand.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"Auth token for the Git provider (overrides config and env var detection)")
	cmd.PersistentFlags().String("provider", "",
		fmt.Sprintf("Git provider (%s, %s)", ghRepo.GitHubProviderName, ghRepo.GiteaProviderName))
	cmd.PersistentFlags().String("base-url", "",
		"API base URL (GitHub Enterprise or Gitea instance)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
}

// loadSettings merges the optional config file with the command-line overrides.
// A missing config file is not an error unless one was given explicitly.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings := entities.NewDefaultSettings()
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		settings = loaded
	}

	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		settings.Provider = provider
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		settings.BaseURL = baseURL
	}
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		settings.Token = token
	}
	if settings.Token == "" {
		settings.Token = resolveTokenFromEnv(settings.Provider)
	}

	return settings, nil
}

// resolveTokenFromEnv reads the conventional token env vars of a provider.
func resolveTokenFromEnv(providerName string) string {
	var names []string
	switch providerName {
	case ghRepo.GitHubProviderName:
		names = []string{"GITHUB_TOKEN", "GH_TOKEN"}
	case ghRepo.GiteaProviderName:
		names = []string{"GITEA_TOKEN"}
	}
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			logger.Debugf("Using token from $%s", name)
			return val
		}
	}
	return ""
}
