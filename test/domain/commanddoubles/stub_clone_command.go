//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repomirror/internal/domain/commands"
	"github.com/rios0rios0/repomirror/internal/domain/entities"
)

// StubCloneCommand is a stub implementation of commands.Clone.
// Without a configured Report it marks every ref as cloned.
type StubCloneCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.CloneReport
	LastRefs         entities.EnumerationResult
	LastOpts         commands.CloneOptions
}

var _ commands.Clone = (*StubCloneCommand)(nil)

func (s *StubCloneCommand) Execute(
	_ context.Context,
	refs entities.EnumerationResult,
	opts commands.CloneOptions,
) (*entities.CloneReport, error) {
	s.ExecuteCallCount++
	s.LastRefs = refs
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Report != nil {
		return s.Report, nil
	}
	report := &entities.CloneReport{}
	for _, ref := range refs {
		report.Outcomes = append(report.Outcomes, entities.CloneOutcome{Ref: ref, Status: entities.CloneSucceeded})
	}
	return report, nil
}
