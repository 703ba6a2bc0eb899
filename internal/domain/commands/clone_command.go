package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
	"github.com/rios0rios0/repomirror/internal/domain/repositories"
)

const destinationPerm = 0o755

// Clone is the interface for the clone command.
type Clone interface {
	Execute(ctx context.Context, refs entities.EnumerationResult, opts CloneOptions) (*entities.CloneReport, error)
}

// ProgressReporter receives one notification per finished clone task.
// Advance may be called from several goroutines at once.
type ProgressReporter interface {
	Start(total int)
	Advance(done int64, total int, outcome entities.CloneOutcome)
	Finish()
}

// CloneOptions holds runtime options for a clone run.
type CloneOptions struct {
	Destination string // Must not exist yet
	Token       string // Anonymous when empty
	Parallelism int    // 0 means one task per repository
	Progress    ProgressReporter
}

// CloneCommand clones every ref concurrently under a fresh destination root.
type CloneCommand struct {
	cloner repositories.CloneRepository
}

// NewCloneCommand creates a new CloneCommand with the given clone capability.
func NewCloneCommand(cloner repositories.CloneRepository) *CloneCommand {
	return &CloneCommand{cloner: cloner}
}

// Execute prepares the destination, then fans out one task per ref and waits for all
// of them. A failed clone is recorded in its own outcome and never stops its siblings;
// only destination errors are returned, before any task starts.
func (it *CloneCommand) Execute(
	ctx context.Context,
	refs entities.EnumerationResult,
	opts CloneOptions,
) (*entities.CloneReport, error) {
	if err := prepareDestination(opts.Destination); err != nil {
		return nil, err
	}

	progress := opts.Progress
	if progress == nil {
		progress = noopProgress{}
	}

	total := len(refs)
	outcomes := make([]entities.CloneOutcome, total)
	var done atomic.Int64

	// plain Group: a failing task must not cancel the context of the others
	var group errgroup.Group
	if opts.Parallelism > 0 {
		group.SetLimit(opts.Parallelism)
	}

	logger.Infof("Cloning %d repositories into %s", total, opts.Destination)
	progress.Start(total)

	for index, ref := range refs {
		group.Go(func() error {
			outcomes[index] = it.cloneOne(ctx, ref, opts)
			progress.Advance(done.Add(1), total, outcomes[index])
			return nil
		})
	}
	_ = group.Wait()

	progress.Finish()

	report := &entities.CloneReport{Outcomes: outcomes}
	logger.Infof("Clone complete: %d succeeded, %d failed", report.Succeeded(), len(report.Failed()))
	return report, nil
}

// cloneOne runs the clone of a single ref, turning errors and panics into a failed outcome.
func (it *CloneCommand) cloneOne(
	ctx context.Context,
	ref entities.RepositoryRef,
	opts CloneOptions,
) (outcome entities.CloneOutcome) {
	outcome = entities.CloneOutcome{Ref: ref, Status: entities.CloneFailed}

	defer func() {
		if recovered := recover(); recovered != nil {
			outcome.Status = entities.CloneFailed
			outcome.Err = fmt.Errorf("clone of %q panicked: %v", ref.Name, recovered)
		}
	}()

	if err := validateRepositoryName(ref.Name); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Path = filepath.Join(opts.Destination, ref.Name)
	if err := it.cloner.Clone(ctx, ref.CloneURL, outcome.Path, opts.Token); err != nil {
		logger.Debugf("Failed to clone %s: %v", ref.Name, err)
		outcome.Err = err
		return outcome
	}

	outcome.Status = entities.CloneSucceeded
	return outcome
}

// prepareDestination refuses an existing root and creates it (with parents) otherwise.
func prepareDestination(destination string) error {
	if destination == "" {
		return &entities.DestinationCreateError{Path: destination, Err: errors.New("path is empty")}
	}

	_, err := os.Stat(destination)
	switch {
	case err == nil:
		return &entities.DestinationExistsError{Path: destination}
	case !errors.Is(err, fs.ErrNotExist):
		return &entities.DestinationCreateError{Path: destination, Err: err}
	}

	if mkdirErr := os.MkdirAll(destination, destinationPerm); mkdirErr != nil {
		return &entities.DestinationCreateError{Path: destination, Err: mkdirErr}
	}
	return nil
}

// validateRepositoryName keeps every task inside its own subdirectory of the root.
func validateRepositoryName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid repository name %q", name)
	}
	return nil
}

type noopProgress struct{}

func (noopProgress) Start(int)                                 {}
func (noopProgress) Advance(int64, int, entities.CloneOutcome) {}
func (noopProgress) Finish()                                   {}
