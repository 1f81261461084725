package cli

import (
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/emuctl/internal/ports"
)

func (c *cli) logsCommand() *cobra.Command {
	var opts ports.LogOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the environment's logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			err = rt.Service.Logs(ctx, cmd.OutOrStdout(), opts)
			if opts.Follow && interrupted(ctx, err) {
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.Follow, "follow", "f", false, "follow log output")
	f.IntVarP(&opts.Tail, "tail", "n", 0, "number of lines to show per container (0 for all)")
	return needsRuntime(cmd)
}
