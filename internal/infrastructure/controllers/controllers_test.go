//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
	"github.com/rios0rios0/repomirror/internal/infrastructure/controllers"
	"github.com/rios0rios0/repomirror/test/domain/commanddoubles"
	"github.com/rios0rios0/repomirror/test/domain/entitybuilders"
)

// writeConfig stores a config file so tests never pick up one from the host.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repomirror.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runController mounts the controller the way the binary does and executes it.
func runController(t *testing.T, ctrl entities.Controller, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "repomirror", SilenceUsage: true, SilenceErrors: true}
	controllers.AddPersistentFlags(root)

	bind := ctrl.GetBind()
	sub := &cobra.Command{
		Use:  bind.Use,
		Args: cobra.ExactArgs(1),
		RunE: ctrl.Execute,
	}
	ctrl.AddFlags(sub)
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListController(t *testing.T) {
	t.Parallel()

	t.Run("should print every ref as a tab separated line", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubEnumerateCommand{
			Result: entitybuilders.NewRepositoryRefBuilder().WithOwner("octo").BuildRefs("alpha", "beta"),
		}
		ctrl := controllers.NewListController(stub)
		cfg := writeConfig(t, "provider: github\n")

		// when
		out, err := runController(t, ctrl, "list", "octo", "--config", cfg, "--token", "tok")

		// then
		require.NoError(t, err)
		assert.Equal(t, "alpha\thttps://github.com/octo/alpha\nbeta\thttps://github.com/octo/beta\n", out)
		assert.Equal(t, "octo", stub.LastOpts.Account)
		assert.Equal(t, "github", stub.LastOpts.ProviderName)
		assert.Equal(t, "tok", stub.LastOpts.Token)
	})

	t.Run("should take provider settings from the config file and let flags override them", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubEnumerateCommand{}
		ctrl := controllers.NewListController(stub)
		cfg := writeConfig(t, `
provider: gitea
base_url: https://git.example.com/api/v1/
token: from-config
`)

		// when
		_, err := runController(t, ctrl, "list", "team", "--config", cfg, "--token", "from-flag")

		// then
		require.NoError(t, err)
		assert.Equal(t, "gitea", stub.LastOpts.ProviderName)
		assert.Equal(t, "https://git.example.com/api/v1/", stub.LastOpts.BaseURL)
		assert.Equal(t, "from-flag", stub.LastOpts.Token)
	})

	t.Run("should return enumeration errors", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubEnumerateCommand{
			ExecuteErr: &entities.FetchError{StatusCode: 404, Body: "Not Found"},
		}
		ctrl := controllers.NewListController(stub)
		cfg := writeConfig(t, "provider: github\n")

		// when
		out, err := runController(t, ctrl, "list", "ghost", "--config", cfg)

		// then
		var fetchErr *entities.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Empty(t, out)
	})

	t.Run("should fail on an unreadable config file", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubEnumerateCommand{}
		ctrl := controllers.NewListController(stub)

		// when
		_, err := runController(t, ctrl, "list", "octo", "--config", "/nonexistent/repomirror.yaml")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
		assert.Zero(t, stub.ExecuteCallCount)
	})
}

func TestCloneController(t *testing.T) {
	t.Parallel()

	t.Run("should clone into the account directory by default and print a summary", func(t *testing.T) {
		t.Parallel()

		// given
		refs := entitybuilders.NewRepositoryRefBuilder().BuildRefs("alpha", "beta", "gamma")
		enumerate := &commanddoubles.StubEnumerateCommand{Result: refs}
		clone := &commanddoubles.StubCloneCommand{}
		ctrl := controllers.NewCloneController(enumerate, clone)
		cfg := writeConfig(t, "provider: github\n")

		// when
		out, err := runController(t, ctrl, "clone", "octo", "--config", cfg, "--token", "tok")

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, clone.ExecuteCallCount)
		assert.Equal(t, refs, clone.LastRefs)
		assert.Equal(t, "octo", clone.LastOpts.Destination)
		assert.Equal(t, "tok", clone.LastOpts.Token)
		assert.Zero(t, clone.LastOpts.Parallelism)
		assert.NotNil(t, clone.LastOpts.Progress)
		assert.Contains(t, out, "Cloned 3 of 3 repositories")
	})

	t.Run("should pass destination and parallelism flags through", func(t *testing.T) {
		t.Parallel()

		// given
		enumerate := &commanddoubles.StubEnumerateCommand{
			Result: entitybuilders.NewRepositoryRefBuilder().BuildRefs("alpha"),
		}
		clone := &commanddoubles.StubCloneCommand{}
		ctrl := controllers.NewCloneController(enumerate, clone)
		cfg := writeConfig(t, "destination: from-config\nparallelism: 2\n")

		// when
		_, err := runController(t, ctrl, "clone", "octo", "--config", cfg, "-d", "/tmp/mirror", "-p", "8")

		// then
		require.NoError(t, err)
		assert.Equal(t, "/tmp/mirror", clone.LastOpts.Destination)
		assert.Equal(t, 8, clone.LastOpts.Parallelism)
	})

	t.Run("should use config destination and parallelism when no flag is set", func(t *testing.T) {
		t.Parallel()

		// given
		enumerate := &commanddoubles.StubEnumerateCommand{}
		clone := &commanddoubles.StubCloneCommand{}
		ctrl := controllers.NewCloneController(enumerate, clone)
		cfg := writeConfig(t, "destination: from-config\nparallelism: 2\n")

		// when
		_, err := runController(t, ctrl, "clone", "octo", "--config", cfg)

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-config", clone.LastOpts.Destination)
		assert.Equal(t, 2, clone.LastOpts.Parallelism)
	})

	t.Run("should only list refs on dry run", func(t *testing.T) {
		t.Parallel()

		// given
		enumerate := &commanddoubles.StubEnumerateCommand{
			Result: entitybuilders.NewRepositoryRefBuilder().BuildRefs("alpha"),
		}
		clone := &commanddoubles.StubCloneCommand{}
		ctrl := controllers.NewCloneController(enumerate, clone)
		cfg := writeConfig(t, "provider: github\n")

		// when
		out, err := runController(t, ctrl, "clone", "octo", "--config", cfg, "--dry-run")

		// then
		require.NoError(t, err)
		assert.Zero(t, clone.ExecuteCallCount)
		assert.Equal(t, "alpha\thttps://github.com/octo/alpha\n", out)
	})

	t.Run("should not clone when the enumeration fails", func(t *testing.T) {
		t.Parallel()

		// given
		enumerate := &commanddoubles.StubEnumerateCommand{ExecuteErr: entities.ErrTransport}
		clone := &commanddoubles.StubCloneCommand{}
		ctrl := controllers.NewCloneController(enumerate, clone)
		cfg := writeConfig(t, "provider: github\n")

		// when
		_, err := runController(t, ctrl, "clone", "octo", "--config", cfg)

		// then
		require.ErrorIs(t, err, entities.ErrTransport)
		assert.Zero(t, clone.ExecuteCallCount)
	})

	t.Run("should return destination errors", func(t *testing.T) {
		t.Parallel()

		// given
		enumerate := &commanddoubles.StubEnumerateCommand{}
		clone := &commanddoubles.StubCloneCommand{
			ExecuteErr: &entities.DestinationExistsError{Path: "octo"},
		}
		ctrl := controllers.NewCloneController(enumerate, clone)
		cfg := writeConfig(t, "provider: github\n")

		// when
		_, err := runController(t, ctrl, "clone", "octo", "--config", cfg)

		// then
		var existsErr *entities.DestinationExistsError
		require.ErrorAs(t, err, &existsErr)
	})

	t.Run("should list failures and succeed unless configured to fail", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			config    string
			expectErr bool
		}{
			{name: "default policy", config: "provider: github\n", expectErr: false},
			{name: "fail on clone error", config: "fail_on_clone_error: true\n", expectErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				refs := entitybuilders.NewRepositoryRefBuilder().BuildRefs("alpha", "beta")
				enumerate := &commanddoubles.StubEnumerateCommand{Result: refs}
				clone := &commanddoubles.StubCloneCommand{Report: &entities.CloneReport{Outcomes: []entities.CloneOutcome{
					{Ref: refs[0], Status: entities.CloneSucceeded},
					{Ref: refs[1], Status: entities.CloneFailed, Err: errors.New("repository not found")},
				}}}
				ctrl := controllers.NewCloneController(enumerate, clone)
				cfg := writeConfig(t, tt.config)

				// when
				out, err := runController(t, ctrl, "clone", "octo", "--config", cfg)

				// then
				assert.Contains(t, out, "Cloned 1 of 2 repositories")
				assert.Contains(t, out, "beta\thttps://github.com/octo/beta\trepository not found")
				if tt.expectErr {
					require.Error(t, err)
					assert.Contains(t, err.Error(), "1 of 2 clones failed")
					return
				}
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject a negative parallelism flag", func(t *testing.T) {
		t.Parallel()

		// given
		enumerate := &commanddoubles.StubEnumerateCommand{}
		clone := &commanddoubles.StubCloneCommand{}
		ctrl := controllers.NewCloneController(enumerate, clone)
		cfg := writeConfig(t, "provider: github\n")

		// when
		_, err := runController(t, ctrl, "clone", "octo", "--config", cfg, "--parallel=-1")

		// then
		require.Error(t, err)
		assert.Zero(t, enumerate.ExecuteCallCount)
	})
}

func TestTokenFromEnvironment(t *testing.T) {
	// NOTE: cannot use t.Parallel() with t.Setenv()

	// given
	t.Setenv("GITHUB_TOKEN", "env-token")
	stub := &commanddoubles.StubEnumerateCommand{}
	ctrl := controllers.NewListController(stub)
	cfg := writeConfig(t, "provider: github\n")

	// when
	_, err := runController(t, ctrl, "list", "octo", "--config", cfg)

	// then
	require.NoError(t, err)
	assert.Equal(t, "env-token", stub.LastOpts.Token)
}
