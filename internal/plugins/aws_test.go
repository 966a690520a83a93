package plugins_test

import (
	"context"
	"testing"
	"time"

	"github.com/chorehq/chore/internal/adapters/cache"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/core/ports/mocks"
	"github.com/chorehq/chore/internal/plugins"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const stsPayload = `{
  "Credentials": {
    "AccessKeyId": "AKIATEST",
    "SecretAccessKey": "secret",
    "SessionToken": "token",
    "Expiration": "2026-03-02T12:00:00Z"
  }
}`

type awsFixture struct {
	plugin  *plugins.AWS
	shell   *mocks.MockShell
	console *mocks.MockConsole
	tmp     string
	req     ports.PluginRequest
}

func newAWSFixture(t *testing.T) *awsFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &awsFixture{
		shell:   mocks.NewMockShell(ctrl),
		console: mocks.NewMockConsole(ctrl),
		tmp:     t.TempDir(),
	}

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	f.plugin = plugins.NewAWS(f.shell, f.console, cache.NewStore(), mockLogger, clock)
	f.req = ports.PluginRequest{
		Options: map[string]any{
			"profile": "staging",
			"region":  "eu-west-1",
			"mfa":     map[string]any{"device": "arn:aws:iam::123:mfa/dev"},
		},
		Tmp: f.tmp,
	}
	return f
}

func TestAWS_LoadRequestsSessionAndCachesIt(t *testing.T) {
	t.Parallel()
	f := newAWSFixture(t)

	f.console.EXPECT().Ask(gomock.Any()).Return("123456", nil)
	f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd ports.ShellCommand) (ports.ShellResult, error) {
			assert.Contains(t, cmd.Line, "aws sts get-session-token")
			assert.Contains(t, cmd.Line, "--profile staging")
			assert.Contains(t, cmd.Line, "--serial-number arn:aws:iam::123:mfa/dev")
			assert.Contains(t, cmd.Line, "--token-code 123456")
			return ports.ShellResult{Stdout: stsPayload}, nil
		})

	vars, err := f.plugin.Load(context.Background(), f.req)
	require.NoError(t, err)

	assert.Equal(t, "staging", vars["AWS_PROFILE"])
	assert.Equal(t, "eu-west-1", vars["AWS_DEFAULT_REGION"])
	assert.Equal(t, "AKIATEST", vars["AWS_ACCESS_KEY_ID"])
	assert.Equal(t, "secret", vars["AWS_SECRET_ACCESS_KEY"])
	assert.Equal(t, "token", vars["AWS_SESSION_TOKEN"])

	// A second load inside the validity window uses the cache: no prompt,
	// no subprocess.
	vars, err = f.plugin.Load(context.Background(), f.req)
	require.NoError(t, err)
	assert.Equal(t, "AKIATEST", vars["AWS_ACCESS_KEY_ID"])
}

func TestAWS_UnloadRemovesCachedSession(t *testing.T) {
	t.Parallel()
	f := newAWSFixture(t)

	f.console.EXPECT().Ask(gomock.Any()).Return("123456", nil).Times(2)
	f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).Times(2).
		Return(ports.ShellResult{Stdout: stsPayload}, nil)

	_, err := f.plugin.Load(context.Background(), f.req)
	require.NoError(t, err)
	require.NoError(t, f.plugin.Unload(context.Background(), f.req))

	// The cache is gone, so the next load prompts again.
	_, err = f.plugin.Load(context.Background(), f.req)
	require.NoError(t, err)
}

func TestAWS_LoadRequiresMFADevice(t *testing.T) {
	t.Parallel()
	f := newAWSFixture(t)

	_, err := f.plugin.Load(context.Background(), ports.PluginRequest{
		Options: map[string]any{"profile": "staging"},
		Tmp:     f.tmp,
	})
	require.Error(t, err)
}
