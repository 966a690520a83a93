package evaluator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chorehq/chore/internal/core/domain"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/chorehq/chore/internal/core/ports/mocks"
	"github.com/chorehq/chore/internal/engine/evaluator"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	eval  *evaluator.Evaluator
	shell *mocks.MockShell
	scope *domain.Scope
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockShell := mocks.NewMockShell(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 3, 14, 5, 6, 0, time.UTC))
	eval := evaluator.New(mockShell, mockLogger, clock)

	return &fixture{
		eval:  eval,
		shell: mockShell,
		scope: domain.NewScope(eval.Builtins(), map[string]string{"USER": "dev"}, nil),
	}
}

func TestEvaluator_Builtins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	assert.Equal(t, "20260203", f.eval.Builtins()[evaluator.BuiltinDate])
	assert.Equal(t, "140506", f.eval.Builtins()[evaluator.BuiltinTime])
}

func TestEvaluator_Eval_EnvSubst(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	t.Run("known name", func(t *testing.T) {
		got, err := f.eval.Eval(context.Background(), &domain.EnvSubst{Template: "hello ${USER}"}, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "hello dev", got)
	})

	t.Run("builtin name", func(t *testing.T) {
		got, err := f.eval.Eval(context.Background(), &domain.EnvSubst{Template: "run-${__DATE__}"}, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "run-20260203", got)
	})

	t.Run("unknown name stays intact", func(t *testing.T) {
		got, err := f.eval.Eval(context.Background(), &domain.EnvSubst{Template: "x ${NOBODY} y"}, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "x ${NOBODY} y", got)
	})

	t.Run("bare dollar is not a placeholder", func(t *testing.T) {
		got, err := f.eval.Eval(context.Background(), &domain.EnvSubst{Template: "echo $USER"}, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "echo $USER", got)
	})
}

func TestEvaluator_Eval_ShellProbes(t *testing.T) {
	t.Parallel()

	t.Run("predicate true on exit zero", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(ports.ShellResult{ExitCode: 0}, nil)

		got, err := f.eval.EvalBool(context.Background(), &domain.ShellPredicate{Command: "which docker"}, f.scope, ".")
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("negated predicate", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(ports.ShellResult{ExitCode: 1}, nil)

		got, err := f.eval.EvalBool(context.Background(), &domain.ShellPredicate{Command: "which docker", Negate: true}, f.scope, ".")
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("capture trims stdout", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(ports.ShellResult{Stdout: "abc123\n"}, nil)

		got, err := f.eval.Eval(context.Background(), &domain.ShellCapture{Command: "git rev-parse HEAD"}, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "abc123", got)
	})

	t.Run("memoized by identity, not text", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		shared := &domain.ShellCapture{Command: "date +%s"}
		distinct := &domain.ShellCapture{Command: "date +%s"}

		f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(ports.ShellResult{Stdout: "1\n"}, nil)
		f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(ports.ShellResult{Stdout: "2\n"}, nil)

		first, err := f.eval.Eval(context.Background(), shared, f.scope, ".")
		require.NoError(t, err)
		second, err := f.eval.Eval(context.Background(), shared, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, first, second, "same instance resolves once")

		other, err := f.eval.Eval(context.Background(), distinct, f.scope, ".")
		require.NoError(t, err)
		assert.NotEqual(t, first, other, "textual twins are still distinct probes")
	})

	t.Run("spawn failure is fatal", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
			Return(ports.ShellResult{}, errors.New("sh not found"))

		_, err := f.eval.Eval(context.Background(), &domain.ShellCapture{Command: "anything"}, f.scope, ".")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrExpressionEval))
	})
}

func TestEvaluator_Eval_Joins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	t.Run("cat concatenates", func(t *testing.T) {
		e := &domain.Join{Parts: []domain.Expr{
			&domain.Literal{Val: "app-"},
			&domain.EnvSubst{Template: "${USER}"},
		}}
		got, err := f.eval.Eval(context.Background(), e, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "app-dev", got)
	})

	t.Run("cats joins with spaces", func(t *testing.T) {
		e := &domain.Join{
			Parts: []domain.Expr{&domain.Literal{Val: "run"}, &domain.Literal{Val: "fast"}},
			Sep:   " ",
		}
		got, err := f.eval.Eval(context.Background(), e, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "run fast", got)
	})

	t.Run("url validates", func(t *testing.T) {
		e := &domain.URLJoin{Parts: []domain.Expr{
			&domain.Literal{Val: "https://api.example.com"},
			&domain.Literal{Val: "/v1"},
		}}
		got, err := f.eval.Eval(context.Background(), e, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/v1", got)
	})

	t.Run("invalid url fails", func(t *testing.T) {
		e := &domain.URLJoin{Parts: []domain.Expr{&domain.Literal{Val: "::not a url"}}}
		_, err := f.eval.Eval(context.Background(), e, f.scope, ".")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrExpressionEval))
	})
}

func TestEvaluator_Eval_Paths(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	home := t.TempDir()

	t.Run("relative paths anchor at project home", func(t *testing.T) {
		e := &domain.PathJoin{Parts: []domain.Expr{
			&domain.Literal{Val: "sub"},
			&domain.Literal{Val: "dir"},
		}}
		got, err := f.eval.Eval(context.Background(), e, f.scope, home)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "sub", "dir"), got)
	})

	t.Run("dotdot collapses", func(t *testing.T) {
		e := &domain.PathJoin{Parts: []domain.Expr{
			&domain.Literal{Val: "a/.."},
			&domain.Literal{Val: "b"},
		}}
		got, err := f.eval.Eval(context.Background(), e, f.scope, home)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "b"), got)
	})

	t.Run("exists", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(home, "present"), 0o755))

		got, err := f.eval.EvalBool(context.Background(),
			&domain.Exists{Parts: []domain.Expr{&domain.Literal{Val: "present"}}}, f.scope, home)
		require.NoError(t, err)
		assert.True(t, got)

		got, err = f.eval.EvalBool(context.Background(),
			&domain.Exists{Parts: []domain.Expr{&domain.Literal{Val: "absent"}}, Negate: true}, f.scope, home)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestEvaluator_ResolveTable(t *testing.T) {
	t.Parallel()

	t.Run("resolves in reference order", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		// HOST references STAGE, which is defined after it in the table.
		table := domain.NewValueTable()
		table.Set("HOST", &domain.EnvSubst{Template: "${STAGE}.example.com"})
		table.Set("STAGE", &domain.EnvSubst{Template: "prod"})

		got, err := f.eval.ResolveTable(context.Background(), table, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "prod", got["STAGE"])
		assert.Equal(t, "prod.example.com", got["HOST"])
	})

	t.Run("probe sees resolved references in its environment", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		table := domain.NewValueTable()
		table.Set("PROBE", &domain.ShellCapture{Command: "echo ${STAGE}"})
		table.Set("STAGE", &domain.EnvSubst{Template: "prod"})

		f.shell.EXPECT().Run(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd ports.ShellCommand) (ports.ShellResult, error) {
				assert.Contains(t, cmd.Env, "STAGE=prod")
				return ports.ShellResult{Stdout: "prod\n"}, nil
			})

		got, err := f.eval.ResolveTable(context.Background(), table, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "prod", got["PROBE"])
	})

	t.Run("cycle is fatal", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		table := domain.NewValueTable()
		table.Set("A", &domain.EnvSubst{Template: "${B}"})
		table.Set("B", &domain.EnvSubst{Template: "${A}"})

		_, err := f.eval.ResolveTable(context.Background(), table, f.scope, ".")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrCircularReference))
	})

	t.Run("plain values pass through", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		table := domain.NewValueTable()
		table.Set("PORT", 5432)
		table.Set("DEBUG", true)

		got, err := f.eval.ResolveTable(context.Background(), table, f.scope, ".")
		require.NoError(t, err)
		assert.Equal(t, "5432", got["PORT"])
		assert.Equal(t, "true", got["DEBUG"])
	})
}
