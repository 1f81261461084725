package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/dto"
)

// Output formats of the status command.
const (
	outputTable = "table"
	outputJSON  = "json"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475A"))
)

func (c *cli) statusCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the environment's containers and health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.runtime()
			if err != nil {
				return err
			}

			st, err := rt.Service.Status(cmd.Context())
			if err != nil {
				return err
			}
			resp := dto.ToStatusResponse(st)

			switch output {
			case outputJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			case outputTable:
				writeStatus(cmd.OutOrStdout(), resp, isTerminal(cmd.OutOrStdout()))
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want %s or %s)", output, outputTable, outputJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json")
	return needsRuntime(cmd)
}

// writeStatus prints the lifecycle state, a container table and the health
// checks. Colors are used only when w is a terminal.
func writeStatus(w io.Writer, resp dto.StatusResponse, color bool) {
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintf(w, "state: %s\n", resp.State)

	if len(resp.Containers) == 0 {
		fmt.Fprintln(w, "no containers")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("NAME", "SERVICE", "STATE", "PORTS").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		if color {
			t = t.BorderStyle(borderStyle)
		}
		for _, ct := range resp.Containers {
			state := ct.State
			if state == "running" {
				state = paint(okStyle, state)
			} else {
				state = paint(failStyle, state)
			}
			t = t.Row(ct.Name, ct.Service, state, joinPorts(ct.Ports))
		}
		fmt.Fprintln(w, t.String())
	}

	names := make([]string, 0, len(resp.Checks))
	for name := range resp.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "checks:")
	for _, name := range names {
		result := resp.Checks[name]
		if result == dto.CheckOK {
			result = paint(okStyle, result)
		} else {
			result = paint(failStyle, result)
		}
		fmt.Fprintf(w, "  %s: %s\n", name, result)
	}
}

func joinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
