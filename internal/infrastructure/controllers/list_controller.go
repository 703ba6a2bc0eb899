package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repomirror/internal/domain/commands"
	"github.com/rios0rios0/repomirror/internal/domain/entities"
)

// ListController handles the "list" subcommand (enumerate only).
type ListController struct {
	command commands.Enumerate
}

// NewListController creates a new ListController.
func NewListController(command commands.Enumerate) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list <account>",
		Short: "List every repository of an account",
		Long: `List every repository owned by an account, one "name<TAB>url" line each,
in the order returned by the platform.`,
	}
}

func (it *ListController) AddFlags(_ *cobra.Command) {}

// Execute enumerates the account and prints the result.
func (it *ListController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	refs, err := it.command.Execute(cmd.Context(), commands.EnumerateOptions{
		ProviderName: settings.Provider,
		BaseURL:      settings.BaseURL,
		Account:      args[0],
		Token:        settings.Token,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, ref := range refs {
		_, _ = fmt.Fprintf(out, "%s\t%s\n", ref.Name, ref.CloneURL)
	}
	return nil
}
