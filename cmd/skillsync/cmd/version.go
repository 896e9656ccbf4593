package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(info buildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skillsync %s (commit %s, built %s)\n",
				info.version, info.commit, info.date)
		},
	}
}
