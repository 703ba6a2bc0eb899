//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repomirror/internal/domain/commands"
	"github.com/rios0rios0/repomirror/internal/domain/entities"
)

// StubEnumerateCommand is a stub implementation of commands.Enumerate.
type StubEnumerateCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           entities.EnumerationResult
	LastOpts         commands.EnumerateOptions
}

var _ commands.Enumerate = (*StubEnumerateCommand)(nil)

func (s *StubEnumerateCommand) Execute(
	_ context.Context,
	opts commands.EnumerateOptions,
) (entities.EnumerationResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Result, nil
}
