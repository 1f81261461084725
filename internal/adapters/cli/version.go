package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("emuctl %s (%s, %s/%s)\n", c.opts.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
