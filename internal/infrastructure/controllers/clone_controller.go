package controllers

import (
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repomirror/internal/domain/commands"
	"github.com/rios0rios0/repomirror/internal/domain/entities"
	"github.com/rios0rios0/repomirror/internal/infrastructure/progress"
)

// CloneController handles the "clone" subcommand (enumerate, then clone everything).
type CloneController struct {
	enumerate commands.Enumerate
	clone     commands.Clone
}

// NewCloneController creates a new CloneController.
func NewCloneController(enumerate commands.Enumerate, clone commands.Clone) *CloneController {
	return &CloneController{enumerate: enumerate, clone: clone}
}

// GetBind returns the Cobra command metadata for the clone controller.
func (it *CloneController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clone <account>",
		Short: "Clone every repository of an account",
		Long: `Discover every repository owned by an account and clone them all,
concurrently, into a fresh destination directory.

The destination must not exist yet. A failed clone is reported in the
final summary and does not stop the other clones.`,
	}
}

// AddFlags adds the clone-specific flags to the given Cobra command.
func (it *CloneController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dest", "d", "", "Destination directory (default: ./<account>)")
	cmd.Flags().IntP("parallel", "p", 0, "Maximum concurrent clones (0 = one per repository)")
	cmd.Flags().Bool("dry-run", false, "Only list what would be cloned")
}

// Execute runs the enumeration and the clone phase.
func (it *CloneController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	account := args[0]

	destination, _ := cmd.Flags().GetString("dest")
	if destination == "" {
		destination = settings.Destination
	}
	if destination == "" {
		destination = account
	}
	if cmd.Flags().Changed("parallel") {
		settings.Parallelism, _ = cmd.Flags().GetInt("parallel")
	}
	if settings.Parallelism < 0 {
		return fmt.Errorf("--parallel must be zero or positive, got %d", settings.Parallelism)
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	refs, err := it.enumerate.Execute(cmd.Context(), commands.EnumerateOptions{
		ProviderName: settings.Provider,
		BaseURL:      settings.BaseURL,
		Account:      account,
		Token:        settings.Token,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		logger.Infof("[dry-run] Would clone %d repositories into %s", len(refs), destination)
		for _, ref := range refs {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", ref.Name, ref.CloneURL)
		}
		return nil
	}

	report, err := it.clone.Execute(cmd.Context(), refs, commands.CloneOptions{
		Destination: destination,
		Token:       settings.Token,
		Parallelism: settings.Parallelism,
		Progress:    newProgressReporter(cmd.ErrOrStderr()),
	})
	if err != nil {
		return err
	}

	printSummary(out, report)
	if failed := len(report.Failed()); failed > 0 && settings.FailOnCloneError {
		return fmt.Errorf("%d of %d clones failed", failed, len(report.Outcomes))
	}
	return nil
}

func newProgressReporter(stderr io.Writer) commands.ProgressReporter {
	if logger.IsLevelEnabled(logger.DebugLevel) {
		return progress.NewLogProgressReporter()
	}
	return progress.NewBarProgressReporter(stderr)
}

// printSummary lists every failure, in input order, after the success count.
func printSummary(out io.Writer, report *entities.CloneReport) {
	failed := report.Failed()
	_, _ = fmt.Fprintf(out, "Cloned %d of %d repositories\n", report.Succeeded(), len(report.Outcomes))
	if len(failed) == 0 {
		return
	}
	_, _ = fmt.Fprintf(out, "Failed (%d):\n", len(failed))
	for _, outcome := range failed {
		_, _ = fmt.Fprintf(out, "  %s\t%s\t%s\n", outcome.Ref.Name, outcome.Ref.CloneURL, outcome.Reason())
	}
}
