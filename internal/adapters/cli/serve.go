package cli

import "github.com/spf13/cobra"

func (c *cli) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the health and status endpoints until interrupted",
		Long: `Serve exposes GET /health/live, GET /health/ready, GET /api/v1/status and
GET /api/v1/env. Readiness reports the docker daemon and every enabled
emulator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}
			return rt.Serve(cmd.Context())
		},
	}
	return needsRuntime(cmd)
}
