package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the available plugins",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			infos := c.app.Plugins()

			width := 0
			for _, info := range infos {
				if len(info.Name) > width {
					width = len(info.Name)
				}
			}
			for _, info := range infos {
				_, _ = fmt.Fprintf(out, "%-*s  %s\n", width, info.Name, info.Help)
			}
		},
	}
}
