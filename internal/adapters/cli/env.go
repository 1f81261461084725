package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Output formats of the env command.
const (
	formatShell  = "shell"
	formatDotenv = "dotenv"
	formatJSON   = "json"
)

func (c *cli) envCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the client variables pointing SDKs at the emulators",
		Long: `Env prints one endpoint variable per enabled emulator followed by the
project id variables. Load them before initializing any SDK client:

  eval "$(emuctl env)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}

			env := rt.Service.Environment()
			if err := env.Validate(); err != nil {
				return err
			}
			vars := env.Variables()

			switch format {
			case formatShell:
				for _, v := range vars {
					cmd.Printf("export %s=%s\n", v.Name, shellQuote(v.Value))
				}
			case formatDotenv:
				for _, v := range vars {
					cmd.Printf("%s=%s\n", v.Name, v.Value)
				}
			case formatJSON:
				out := make(map[string]string, len(vars))
				for _, v := range vars {
					out[v.Name] = v.Value
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			default:
				return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatShell, formatDotenv, formatJSON)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatShell, "output format: shell, dotenv, json")
	return needsRuntime(cmd)
}

// shellQuote single-quotes s for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
