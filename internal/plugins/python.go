package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chorehq/chore/internal/core/ports"
	"go.trai.ch/zerr"
)

const pythonKey = "python"

// Python bootstraps a project virtual environment and puts it on PATH.
// Requirements files are reinstalled only when they changed since the last
// install, tracked through stamp files inside the venv.
type Python struct {
	shell  ports.Shell
	logger ports.Logger
}

// NewPython creates the python plugin.
func NewPython(shell ports.Shell, logger ports.Logger) *Python {
	return &Python{shell: shell, logger: logger}
}

func (p *Python) Key() string  { return pythonKey }
func (p *Python) Help() string { return "bootstrap a python virtual environment" }

// Load creates the venv when missing, installs requirements and packages,
// and contributes VIRTUAL_ENV plus a PATH prepend.
func (p *Python) Load(ctx context.Context, req ports.PluginRequest) (map[string]string, error) {
	venv := stringOption(req.Options, "venv", filepath.Join(req.Home, "venv"))
	if !filepath.IsAbs(venv) {
		venv = filepath.Join(req.Home, venv)
	}
	exe := stringOption(req.Options, "exe", "python3")

	created, err := p.ensureVenv(ctx, req, exe, venv)
	if err != nil {
		return nil, err
	}

	for _, reqFile := range stringsOption(req.Options, "requirements", nil) {
		if err := p.installRequirements(ctx, req, venv, reqFile); err != nil {
			return nil, err
		}
	}

	if packages := stringsOption(req.Options, "packages", nil); len(packages) > 0 && created {
		if err := p.pip(ctx, req, venv, "install "+strings.Join(packages, " ")); err != nil {
			return nil, err
		}
	}

	return map[string]string{
		"VIRTUAL_ENV": venv,
		"PATH":        filepath.Join(venv, "bin") + string(os.PathListSeparator) + req.Env["PATH"],
	}, nil
}

// Unload leaves the venv in place; recreating it on every run would defeat
// the point of having one.
func (p *Python) Unload(context.Context, ports.PluginRequest) error { return nil }

// ensureVenv creates the venv if it does not exist. The bool reports
// whether it was created now.
func (p *Python) ensureVenv(ctx context.Context, req ports.PluginRequest, exe, venv string) (bool, error) {
	if _, err := os.Stat(filepath.Join(venv, "bin")); err == nil {
		return false, nil
	}

	p.logger.Info(fmt.Sprintf("creating virtual environment at %s", venv))
	res, err := p.shell.Run(ctx, ports.ShellCommand{
		Line:    fmt.Sprintf("%s -m venv %q", exe, venv),
		Dir:     req.Home,
		Env:     environ(req.Env),
		Capture: true,
	})
	if err != nil {
		return false, zerr.Wrap(err, "failed to spawn venv creation")
	}
	if res.ExitCode != 0 {
		return false, zerr.With(zerr.New("venv creation failed"), "output", res.Stdout)
	}
	return true, nil
}

// installRequirements runs pip against a requirements file when the file is
// newer than its install stamp.
func (p *Python) installRequirements(ctx context.Context, req ports.PluginRequest, venv, reqFile string) error {
	path := reqFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(req.Home, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "requirements file not found"), "file", path)
	}

	stamp := filepath.Join(venv, ".chore-"+sanitize(filepath.Base(path))+".stamp")
	if stampInfo, err := os.Stat(stamp); err == nil && !info.ModTime().After(stampInfo.ModTime()) {
		return nil
	}

	if err := p.pip(ctx, req, venv, fmt.Sprintf("install -r %q", path)); err != nil {
		return err
	}
	if err := os.WriteFile(stamp, nil, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write install stamp")
	}
	return nil
}

func (p *Python) pip(ctx context.Context, req ports.PluginRequest, venv, args string) error {
	line := fmt.Sprintf("%q %s", filepath.Join(venv, "bin", "pip"), args)
	res, err := p.shell.Run(ctx, ports.ShellCommand{
		Line:    line,
		Dir:     req.Home,
		Env:     environ(req.Env),
		Capture: true,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to spawn pip")
	}
	if res.ExitCode != 0 {
		return zerr.With(zerr.New("pip failed"), "output", res.Stdout)
	}
	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, name)
}
