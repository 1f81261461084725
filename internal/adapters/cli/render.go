package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *cli) renderCommand() *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the Dockerfile, compose file and emulator config",
		Long: `Render validates the service descriptors and writes the container build
recipe, the compose file and the emulator config to the project directory.
Nothing is started.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}

			artifacts, err := rt.Service.Render()
			if err != nil {
				return err
			}

			if toStdout {
				for _, f := range artifacts.Files() {
					cmd.Printf("# ==> %s <==\n%s\n", f.Name, f.Content)
				}
				return nil
			}

			files := artifacts.Files()
			if err := rt.Writer.Write(files); err != nil {
				return fmt.Errorf("writing artifacts: %w", err)
			}
			for _, f := range files {
				cmd.Printf("wrote %s\n", filepath.Join(rt.Config.ProjectDir(), f.Name))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the files instead of writing them")
	return needsRuntime(cmd)
}
