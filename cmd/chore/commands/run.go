package commands

import (
	"fmt"

	"github.com/chorehq/chore/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [jobs...]",
		Short: "Run the named jobs and everything they depend on",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.runOptions()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return c.listJobs(cmd, opts)
			}
			return c.app.Run(cmd.Context(), args, opts)
		},
	}
}

// listJobs prints the available jobs with their help text.
func (c *CLI) listJobs(cmd *cobra.Command, opts app.RunOptions) error {
	jobs, err := c.app.Jobs(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(jobs) == 0 {
		_, _ = fmt.Fprintln(out, "No jobs defined.")
		return nil
	}

	width := 0
	for _, job := range jobs {
		if len(job.Name) > width {
			width = len(job.Name)
		}
	}
	_, _ = fmt.Fprintln(out, "Available jobs:")
	for _, job := range jobs {
		_, _ = fmt.Fprintf(out, "  %-*s  %s\n", width, job.Name, job.Help)
	}
	return nil
}
