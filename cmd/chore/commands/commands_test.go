package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/chorehq/chore/cmd/chore/commands"
	"github.com/chorehq/chore/internal/app"
	"github.com/chorehq/chore/internal/build"
	"github.com/chorehq/chore/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApp struct {
	runFunc  func(ctx context.Context, targets []string, opts app.RunOptions) error
	jobsFunc func(ctx context.Context, opts app.RunOptions) ([]app.JobInfo, error)
	plugins  []app.PluginInfo
}

func (m *mockApp) Run(ctx context.Context, targets []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, targets, opts)
	}
	return nil
}

func (m *mockApp) Jobs(ctx context.Context, opts app.RunOptions) ([]app.JobInfo, error) {
	if m.jobsFunc != nil {
		return m.jobsFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockApp) Plugins() []app.PluginInfo {
	return m.plugins
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedTargets []string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, targets []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedTargets = targets
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"run", "deploy",
			"-c", "other.yaml",
			"-e", "STAGE:prod",
			"-e", "REGION:eu-west-1",
			"-p", "aws:off",
			"--force",
		})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, []string{"deploy"}, capturedTargets)
		assert.Equal(t, "other.yaml", capturedOpts.ConfigPath)
		assert.Equal(t, map[string]string{"STAGE": "prod", "REGION": "eu-west-1"}, capturedOpts.EnvOverrides)
		assert.Equal(t, map[string]bool{"aws": false}, capturedOpts.PluginOverrides)
		assert.True(t, capturedOpts.Force)
	})

	t.Run("defaults config path", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "deploy"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.DefaultConfigFile, capturedOpts.ConfigPath)
		assert.False(t, capturedOpts.Force)
	})

	t.Run("rejects malformed env override", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"run", "deploy", "-e", "NOVALUE"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfigSyntax))
	})

	t.Run("rejects malformed plugin override", func(t *testing.T) {
		mock := &mockApp{}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"run", "deploy", "-p", "aws:maybe"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfigSyntax))
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "target"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("lists jobs when no targets provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
			jobsFunc: func(_ context.Context, _ app.RunOptions) ([]app.JobInfo, error) {
				return []app.JobInfo{
					{Name: "deploy", Help: "Ship it"},
					{Name: "up", Help: "Start the local stack"},
				}, nil
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"run"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "deploy")
		assert.Contains(t, buf.String(), "Ship it")
		assert.Contains(t, buf.String(), "Start the local stack")
	})
}

func TestCommands_Plugins(t *testing.T) {
	mock := &mockApp{
		plugins: []app.PluginInfo{
			{Name: "aws", Help: "Temporary AWS session credentials"},
			{Name: "dotenv", Help: "Load variables from .env files"},
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"plugins"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "aws")
	assert.Contains(t, buf.String(), "dotenv")
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
