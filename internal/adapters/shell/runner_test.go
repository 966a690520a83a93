package shell_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chorehq/chore/internal/adapters/shell"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T) *shell.Runner {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return shell.NewRunner(mockLogger)
}

func TestRunner_CapturesStdout(t *testing.T) {
	t.Parallel()
	r := newRunner(t)

	res, err := r.Run(context.Background(), ports.ShellCommand{
		Line:    "echo hello",
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestRunner_ShellExpandsEnvironment(t *testing.T) {
	t.Parallel()
	r := newRunner(t)

	res, err := r.Run(context.Background(), ports.ShellCommand{
		Line:    "echo ${GREETING} $GREETING",
		Env:     []string{"PATH=/usr/bin:/bin", "GREETING=hi"},
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hi hi\n", res.Stdout)
}

func TestRunner_MultiLineBlockSharesState(t *testing.T) {
	t.Parallel()
	r := newRunner(t)

	// A multi-line task block runs as one subprocess, so a variable set on
	// one line is visible on the next.
	res, err := r.Run(context.Background(), ports.ShellCommand{
		Line:    "GREETING=hello\necho $GREETING",
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestRunner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()
	r := newRunner(t)

	res, err := r.Run(context.Background(), ports.ShellCommand{Line: "exit 3", Capture: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunner_RunsInWorkingDirectory(t *testing.T) {
	t.Parallel()
	r := newRunner(t)
	dir := t.TempDir()

	res, err := r.Run(context.Background(), ports.ShellCommand{
		Line:    "pwd",
		Dir:     dir,
		Capture: true,
	})
	require.NoError(t, err)
	// Resolve symlinks so the comparison survives /tmp being a link.
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(filepath.Clean(res.Stdout[:len(res.Stdout)-1]))
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestRunner_MissingDirectoryFallsBack(t *testing.T) {
	t.Parallel()
	r := newRunner(t)

	res, err := r.Run(context.Background(), ports.ShellCommand{
		Line:    "true",
		Dir:     filepath.Join(t.TempDir(), "missing"),
		Capture: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunner_ContextCancellation(t *testing.T) {
	t.Parallel()
	r := newRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, ports.ShellCommand{Line: "sleep 10", Capture: true})
	require.Error(t, err)
}

func TestRunner_LogsUncapturedOutput(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("line1").Times(1)
	mockLogger.EXPECT().Info("line2").Times(1)

	r := shell.NewRunner(mockLogger)
	res, err := r.Run(context.Background(), ports.ShellCommand{
		Line: "echo line1; echo line2",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
}
