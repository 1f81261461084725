package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// stopTimeout bounds the teardown after an attached session is interrupted.
const stopTimeout = 2 * time.Minute

func (c *cli) upCommand() *cobra.Command {
	var (
		rebuild bool
		detach  bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Build and start the environment and wait until it is ready",
		Long: `Up renders and writes the artifacts, builds the image, starts the
environment with docker compose and waits until every enabled emulator
accepts connections.

Without --detach the logs are followed until interrupted (Ctrl-C), and the
environment is then stopped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if err := rt.Service.Start(ctx, ports.StartOptions{Rebuild: rebuild}); err != nil {
				return err
			}

			cmd.Println("environment ready")
			for _, v := range rt.Service.Environment().Variables() {
				cmd.Printf("  %s=%s\n", v.Name, v.Value)
			}

			if detach {
				return nil
			}

			logErr := rt.Service.Logs(ctx, cmd.OutOrStdout(), ports.LogOptions{Follow: true})
			if logErr != nil && !interrupted(ctx, logErr) {
				rt.Logger.WarnContext(ctx, "log stream ended",
					slog.String("operation", "up"),
					slog.Any("error", logErr),
				)
			}

			stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
			defer cancel()

			if err := rt.Service.Stop(stopCtx); err != nil {
				return err
			}
			cmd.Println("environment stopped")
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&rebuild, "rebuild", false, "rebuild the image from scratch before starting")
	f.BoolVarP(&detach, "detach", "d", false, "return once ready instead of following the logs")
	return needsRuntime(cmd)
}
