package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chorehq/chore/internal/adapters/config"
	"github.com/chorehq/chore/internal/app"
	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/core/ports/mocks"
	"github.com/chorehq/chore/internal/engine/evaluator"
	"github.com/chorehq/chore/internal/engine/executor"
	"github.com/chorehq/chore/internal/engine/scheduler"
	"github.com/chorehq/chore/internal/plugins"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app     *app.App
	shell   *mocks.MockShell
	console *mocks.MockConsole
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		shell:   mocks.NewMockShell(ctrl),
		console: mocks.NewMockConsole(ctrl),
	}
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	mockLocker := mocks.NewMockLocker(ctrl)
	mockLocker.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(func() error { return nil }, nil).AnyTimes()
	mockOpener := mocks.NewMockOpener(ctrl)
	mockOpener.EXPECT().Open(gomock.Any()).Return(nil).AnyTimes()

	f.console.EXPECT().Running(gomock.Any()).AnyTimes()
	f.console.EXPECT().Finished(gomock.Any()).AnyTimes()
	f.console.EXPECT().Skipped(gomock.Any()).AnyTimes()
	f.console.EXPECT().Task(gomock.Any()).AnyTimes()
	f.console.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	clock := clockwork.NewFakeClock()
	eval := evaluator.New(f.shell, mockLogger, clock)
	exec := executor.New(f.shell, f.console, mockLocker, mockOpener, mockLogger, eval, clock)
	registry := plugins.NewRegistry(plugins.NewDotenv(mockLogger))

	f.app = app.New(
		config.NewLoader(mockLogger),
		scheduler.New(mockLogger),
		exec,
		eval,
		registry,
		mockLogger,
	)
	return f
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApp_Run_EndToEnd(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	path := writeConfig(t, `
env:
  STAGE: dev
  HOST: !env ${STAGE}.example.com
jobs:
  bootstrap:
    run: ./bootstrap.sh
  migrate:
    run: ./migrate.sh
    after: [bootstrap]
  up:
    run: echo ${HOST}
    after: [migrate]
`)

	var lines []string
	f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).Times(3).
		DoAndReturn(func(_ context.Context, cmd ports.ShellCommand) (ports.ShellResult, error) {
			lines = append(lines, cmd.Line)
			assert.Contains(t, cmd.Env, "STAGE=dev")
			assert.Contains(t, cmd.Env, "HOST=dev.example.com")
			for _, kv := range cmd.Env {
				assert.False(t, strings.HasPrefix(kv, "__DATE__="), "builtins never reach subprocesses")
				assert.False(t, strings.HasPrefix(kv, "__TIME__="), "builtins never reach subprocesses")
			}
			return ports.ShellResult{}, nil
		})

	err := f.app.Run(context.Background(), []string{"up"}, app.RunOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"./bootstrap.sh", "./migrate.sh", "echo ${HOST}"}, lines)
}

func TestApp_Run_EnvOverridesWin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	path := writeConfig(t, `
env:
  STAGE: dev
jobs:
  show:
    run: env
`)

	f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd ports.ShellCommand) (ports.ShellResult, error) {
			assert.Contains(t, cmd.Env, "STAGE=prod")
			return ports.ShellResult{}, nil
		})

	err := f.app.Run(context.Background(), []string{"show"}, app.RunOptions{
		ConfigPath:   path,
		EnvOverrides: map[string]string{"STAGE": "prod"},
	})
	require.NoError(t, err)
}

func TestApp_Run_AutoloadPlugin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FROM_DOTENV=42\n"), 0o644))
	path := filepath.Join(dir, "chore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plugins:
  dotenv:
    autoload: true
jobs:
  show:
    run: env
`), 0o644))

	f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd ports.ShellCommand) (ports.ShellResult, error) {
			assert.Contains(t, cmd.Env, "FROM_DOTENV=42")
			return ports.ShellResult{}, nil
		})

	err := f.app.Run(context.Background(), []string{"show"}, app.RunOptions{ConfigPath: path})
	require.NoError(t, err)
}

func TestApp_Run_PluginOverrideDisablesAutoload(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FROM_DOTENV=42\n"), 0o644))
	path := filepath.Join(dir, "chore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plugins:
  dotenv:
    autoload: true
jobs:
  show:
    run: env
`), 0o644))

	f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd ports.ShellCommand) (ports.ShellResult, error) {
			assert.NotContains(t, cmd.Env, "FROM_DOTENV=42")
			return ports.ShellResult{}, nil
		})

	err := f.app.Run(context.Background(), []string{"show"}, app.RunOptions{
		ConfigPath:      path,
		PluginOverrides: map[string]bool{"dotenv": false},
	})
	require.NoError(t, err)
}

func TestApp_Run_UnknownTarget(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	path := writeConfig(t, "jobs:\n  only:\n    run: \"true\"\n")

	err := f.app.Run(context.Background(), []string{"ghost"}, app.RunOptions{ConfigPath: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownJob))
	assert.Equal(t, 2, domain.ExitCode(err))
}

func TestApp_Run_MissingConfig(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.app.Run(context.Background(), []string{"x"}, app.RunOptions{
		ConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}

func TestApp_Jobs(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	path := writeConfig(t, `
jobs:
  b:
    help: second
    run: "true"
  a:
    help: first
    run: "true"
`)

	jobs, err := f.app.Jobs(context.Background(), app.RunOptions{ConfigPath: path})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, app.JobInfo{Name: "a", Help: "first"}, jobs[0])
	assert.Equal(t, app.JobInfo{Name: "b", Help: "second"}, jobs[1])
}

func TestApp_Plugins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	infos := f.app.Plugins()
	require.Len(t, infos, 1)
	assert.Equal(t, "dotenv", infos[0].Name)
	assert.NotEmpty(t, infos[0].Help)
}
