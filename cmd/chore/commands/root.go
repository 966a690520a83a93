// Package commands implements the CLI commands for the chore task runner.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chorehq/chore/internal/app"
	"github.com/chorehq/chore/internal/build"
	"github.com/chorehq/chore/internal/core/domain"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for chore.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	envFlags   []string
	pluginOpts []string
	force      bool
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, targets []string, opts app.RunOptions) error
	Jobs(ctx context.Context, opts app.RunOptions) ([]app.JobInfo, error)
	Plugins() []app.PluginInfo
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "chore",
		Short:         "A personalized task runner for project chores",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", app.DefaultConfigFile, "Path to the configuration file")
	pf.StringArrayVarP(&c.envFlags, "env", "e", nil, "Override an environment value as KEY:value (repeatable)")
	pf.StringArrayVarP(&c.pluginOpts, "plugin", "p", nil, "Force a plugin on or off as name:on or name:off (repeatable)")
	pf.BoolVar(&c.force, "force", false, "Run jobs even when their skip condition holds")

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPluginsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions translates the persistent flags into application run options.
func (c *CLI) runOptions() (app.RunOptions, error) {
	opts := app.RunOptions{
		ConfigPath: c.configPath,
		Force:      c.force,
	}

	for _, pair := range c.envFlags {
		key, value, ok := strings.Cut(pair, ":")
		if !ok || key == "" {
			return app.RunOptions{}, zerr.With(
				zerr.Wrap(domain.ErrConfigSyntax, "environment overrides take the form KEY:value"),
				"flag", pair,
			)
		}
		if opts.EnvOverrides == nil {
			opts.EnvOverrides = make(map[string]string)
		}
		opts.EnvOverrides[key] = value
	}

	for _, pair := range c.pluginOpts {
		name, state, ok := strings.Cut(pair, ":")
		if !ok || name == "" || (state != "on" && state != "off") {
			return app.RunOptions{}, zerr.With(
				zerr.Wrap(domain.ErrConfigSyntax, "plugin overrides take the form name:on or name:off"),
				"flag", pair,
			)
		}
		if opts.PluginOverrides == nil {
			opts.PluginOverrides = make(map[string]bool)
		}
		opts.PluginOverrides[name] = state == "on"
	}

	return opts, nil
}
