package cli

import "github.com/spf13/cobra"

func (c *cli) downCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop the environment and remove its containers",
		Long:  `Down is safe to run when nothing is running.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}
			if err := rt.Service.Stop(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("environment stopped")
			return nil
		},
	}
	return needsRuntime(cmd)
}
