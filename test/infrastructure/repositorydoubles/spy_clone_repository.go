//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"os"
	"sync"

	"github.com/rios0rios0/repomirror/internal/domain/repositories"
)

// CloneCall captures the arguments of one Clone invocation.
type CloneCall struct {
	URL         string
	Destination string
	Token       string
}

// SpyCloneRepository implements repositories.CloneRepository as a concurrency-safe spy.
// Successful clones create the destination directory so callers can inspect the tree.
type SpyCloneRepository struct {
	// --- Clone ---
	FailURLs map[string]error // url -> error to return
	PanicURL string           // url that makes Clone panic
	Block    chan struct{}    // when set, every call waits until it is closed

	mu    sync.Mutex
	calls []CloneCall

	// spy: number of calls running at the same time, peak value
	active    int
	maxActive int
}

var _ repositories.CloneRepository = (*SpyCloneRepository)(nil)

func (s *SpyCloneRepository) Clone(_ context.Context, url, destination, token string) error {
	s.mu.Lock()
	s.calls = append(s.calls, CloneCall{URL: url, Destination: destination, Token: token})
	s.active++
	if s.active > s.maxActive {
		s.maxActive = s.active
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}()

	if s.Block != nil {
		<-s.Block
	}
	if url == s.PanicURL && url != "" {
		panic("clone exploded")
	}
	if err, ok := s.FailURLs[url]; ok {
		return err
	}
	return os.MkdirAll(destination, 0o750)
}

// Calls returns a copy of the recorded calls.
func (s *SpyCloneRepository) Calls() []CloneCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CloneCall(nil), s.calls...)
}

// MaxActive returns the highest number of concurrent Clone calls observed.
func (s *SpyCloneRepository) MaxActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxActive
}
