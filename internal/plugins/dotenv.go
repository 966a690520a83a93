package plugins

import (
	"context"
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/chorehq/chore/internal/core/ports"
	"github.com/joho/godotenv"
	"go.trai.ch/zerr"
)

const dotenvKey = "dotenv"

// Dotenv contributes variables parsed from dotenv files. Files are read in
// the configured order and later files win.
type Dotenv struct {
	logger ports.Logger
}

// NewDotenv creates the dotenv plugin.
func NewDotenv(logger ports.Logger) *Dotenv {
	return &Dotenv{logger: logger}
}

func (d *Dotenv) Key() string  { return dotenvKey }
func (d *Dotenv) Help() string { return "load environment variables from dotenv files" }

// Load parses each configured file. A missing file is tolerated with a
// warning so a shared configuration works on machines without local
// overrides.
func (d *Dotenv) Load(_ context.Context, req ports.PluginRequest) (map[string]string, error) {
	files := stringsOption(req.Options, "files", []string{".env"})

	merged := map[string]string{}
	for _, f := range files {
		path := f
		if !filepath.IsAbs(path) {
			path = filepath.Join(req.Home, path)
		}

		vals, err := godotenv.Read(path)
		if err != nil {
			d.logger.Warn(fmt.Sprintf("dotenv: skipping %s: %v", path, err))
			continue
		}
		if err := mergo.Merge(&merged, vals, mergo.WithOverride); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to merge dotenv file"), "file", path)
		}
	}
	return merged, nil
}

// Unload has nothing to tear down; the scope bookkeeping is the host's job.
func (d *Dotenv) Unload(context.Context, ports.PluginRequest) error { return nil }
