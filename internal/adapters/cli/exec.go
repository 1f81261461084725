package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/emuctl/pkg/emulatorenv"
)

func (c *cli) execCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- command [args...]",
		Short: "Run a command with the client variables set",
		Long: `Exec exports the endpoint and project id variables, then runs the
command with them in its environment. The command's exit code is returned.`,
		Example: "  emuctl exec -- npm test",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}

			// The variables land in this process before the child is
			// built, so it inherits them with the rest of the environment.
			child, err := emulatorenv.Initialize(rt.Service.Environment(), func() (*exec.Cmd, error) {
				child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
				child.Env = os.Environ()
				child.Stdin = cmd.InOrStdin()
				child.Stdout = cmd.OutOrStdout()
				child.Stderr = cmd.ErrOrStderr()
				return child, nil
			})
			if err != nil {
				return err
			}

			if err := child.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return &ExitError{Code: exitErr.ExitCode()}
				}
				return fmt.Errorf("running %s: %w", args[0], err)
			}
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return needsRuntime(cmd)
}
