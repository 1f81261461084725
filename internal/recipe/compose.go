package recipe

import (
	"bytes"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
)

const composeHeader = "# Rendered by emuctl from the service descriptors. Do not edit by hand.\n"

const composeIndent = 2

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
	Volumes  map[string]composeVolume  `yaml:"volumes"`
}

type composeService struct {
	Build       composeBuild `yaml:"build"`
	Ports       []quoted     `yaml:"ports"`
	Environment []quoted     `yaml:"environment"`
	Volumes     []quoted     `yaml:"volumes"`
}

type composeBuild struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

// composeVolume renders as an empty mapping so the volume uses the default
// local driver.
type composeVolume struct{}

// quoted is a string that always renders double-quoted. Compose treats
// unquoted "a:b" values inconsistently across YAML 1.1 and 1.2 parsers.
type quoted string

// MarshalYAML implements yaml.Marshaler.
func (q quoted) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Tag:   "!!str",
		Value: string(q),
	}, nil
}

func renderCompose(enabled []emulator.Descriptor, opts Options) (string, error) {
	ports := make([]quoted, 0, len(enabled))
	for _, d := range enabled {
		ports = append(ports, quoted(fmt.Sprintf("%d:%d", d.Port, d.Port)))
	}

	endpoints := Endpoints(enabled, opts.EndpointHost)
	env := make([]quoted, 0, len(endpoints)+2)
	for _, e := range endpoints {
		env = append(env, quoted(e.EnvVar+"="+e.Address))
	}
	for _, kv := range ProjectEnv(opts.ProjectID) {
		env = append(env, quoted(kv[0]+"="+kv[1]))
	}

	volumes := []quoted{quoted(opts.ProjectDir + ":" + opts.WorkDir)}
	named := map[string]composeVolume{}
	if opts.DataVolume != "" && opts.DataDir != "" {
		volumes = append(volumes, quoted(opts.DataVolume+":"+path.Join(opts.WorkDir, opts.DataDir)))
		named[opts.DataVolume] = composeVolume{}
	}

	file := composeFile{
		Services: map[string]composeService{
			opts.ProjectName: {
				Build: composeBuild{
					Context:    ".",
					Dockerfile: opts.DockerfileName,
				},
				Ports:       ports,
				Environment: env,
				Volumes:     volumes,
			},
		},
		Volumes: named,
	}

	var buf bytes.Buffer
	buf.WriteString(composeHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(composeIndent)
	if err := enc.Encode(file); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
