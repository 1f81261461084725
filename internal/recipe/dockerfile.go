package recipe

import (
	"bytes"
	"embed"
	"encoding/json"
	"path"
	"strings"
	"text/template"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
)

//go:embed templates/Dockerfile.tmpl
var templateFS embed.FS

var dockerfileTemplate = template.Must(template.ParseFS(templateFS, "templates/Dockerfile.tmpl"))

type dockerfileData struct {
	BaseImage     string
	SystemInstall string
	SystemPackage string
	CLIPackage    string
	WorkDir       string
	Ports         []int
	Command       string
}

func renderDockerfile(enabled []emulator.Descriptor, opts Options) (string, error) {
	ports := make([]int, 0, len(enabled))
	for _, d := range enabled {
		ports = append(ports, d.Port)
	}

	command, err := execForm(launchArgs(enabled, opts))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = dockerfileTemplate.Execute(&buf, dockerfileData{
		BaseImage:     opts.BaseImage,
		SystemInstall: opts.SystemInstall,
		SystemPackage: opts.SystemPackage,
		CLIPackage:    opts.CLIPackage,
		WorkDir:       opts.WorkDir,
		Ports:         ports,
		Command:       command,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// launchArgs is the single foreground command of the container. The
// emulator list comes from the enabled services so the two never drift.
func launchArgs(enabled []emulator.Descriptor, opts Options) []string {
	args := []string{"firebase", "emulators:start", "--project", opts.ProjectID}

	only := make([]string, 0, len(enabled))
	for _, d := range enabled {
		if emulator.IsAuxiliary(d.Name) {
			continue
		}
		only = append(only, d.Name)
	}
	if len(only) > 0 {
		args = append(args, "--only", strings.Join(only, ","))
	}

	if opts.DataDir != "" {
		dir := path.Join(opts.WorkDir, opts.DataDir)
		args = append(args, "--import", dir, "--export-on-exit", dir)
	}
	return args
}

// execForm renders args as a Dockerfile exec-form JSON array.
func execForm(args []string) (string, error) {
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", err
		}
		quoted = append(quoted, string(b))
	}
	return "[" + strings.Join(quoted, ", ") + "]", nil
}
