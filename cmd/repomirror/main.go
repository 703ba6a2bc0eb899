package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repomirror/internal"
	"github.com/rios0rios0/repomirror/internal/infrastructure/controllers"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "repomirror",
		Short: "Mirror every repository of a GitHub account",
		Long: `Discover every repository owned by a user or organization and clone
them all, concurrently, into a local directory.

Supports GitHub (including Enterprise) and Gitea as Git hosting providers.

Usage:
  repomirror list octo               Print every repository of "octo"
  repomirror clone octo -d ./mirror  Clone everything into ./mirror`,
		SilenceUsage: true,
	}

	controllers.AddPersistentFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.ExactArgs(1),
			RunE:  controller.Execute,
		}

		// Add controller-specific flags
		controller.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, injectAppContext())

	if err := cobraRoot.ExecuteContext(ctx); err != nil {
		stop()
		logger.Fatalf("Error executing 'repomirror': %s", err)
	}
}
