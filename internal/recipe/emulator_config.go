package recipe

import (
	"encoding/json"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
)

type emulatorEndpoint struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

// renderEmulatorConfig binds every enabled emulator to ListenHost so the
// ports published by compose reach it. Without this the vendor CLI listens
// on loopback inside the container only.
func renderEmulatorConfig(enabled []emulator.Descriptor, opts Options) (string, error) {
	emulators := make(map[string]any, len(enabled)+1)
	for _, d := range enabled {
		ep := emulatorEndpoint{Host: opts.ListenHost, Port: d.Port}
		if emulator.IsUI(d.Name) {
			on := true
			ep.Enabled = &on
		}
		emulators[d.Name] = ep
	}
	if _, ok := emulators["ui"]; !ok {
		emulators["ui"] = map[string]bool{"enabled": false}
	}
	emulators["singleProjectMode"] = true

	b, err := json.MarshalIndent(map[string]any{"emulators": emulators}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
