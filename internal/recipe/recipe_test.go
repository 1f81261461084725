package recipe_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/emuctl/internal/domain"
	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
	"github.com/jsamuelsen11/emuctl/internal/recipe"
)

func firestoreAndUI() emulator.Set {
	return emulator.NewSet(
		emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		emulator.Descriptor{Name: "ui", Port: 4000, Enabled: true},
	)
}

func countLines(text, prefix string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestRender_FirestoreAndUI(t *testing.T) {
	t.Parallel()

	a, err := recipe.Render(firestoreAndUI(), recipe.DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, a.Dockerfile, "EXPOSE 4000\nEXPOSE 8080\n")
	assert.Equal(t, 2, countLines(a.Dockerfile, "EXPOSE "))
	assert.Contains(t, a.Compose, `"4000:4000"`)
	assert.Contains(t, a.Compose, `"8080:8080"`)
	assert.Less(t, strings.Index(a.Compose, `"4000:4000"`), strings.Index(a.Compose, `"8080:8080"`))
}

func TestRender_OneExposeLinePerEnabledService(t *testing.T) {
	t.Parallel()

	sets := []emulator.Set{
		emulator.NewSet(emulator.Descriptor{Name: "auth", Port: 9099, Enabled: true}),
		emulator.NewSet(
			emulator.Descriptor{Name: "auth", Port: 9099, Enabled: true},
			emulator.Descriptor{Name: "storage", Port: 9199, Enabled: true},
			emulator.Descriptor{Name: "pubsub", Port: 8085, Enabled: false},
		),
		emulator.NewSet(
			emulator.Descriptor{Name: "ui", Port: 4000, Enabled: true},
			emulator.Descriptor{Name: "hub", Port: 4400, Enabled: true},
			emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
			emulator.Descriptor{Name: "database", Port: 9000, Enabled: true},
			emulator.Descriptor{Name: "functions", Port: 5001, Enabled: true},
		),
	}

	for _, set := range sets {
		a, err := recipe.Render(set, recipe.DefaultOptions())
		require.NoError(t, err)

		enabled := set.Enabled()
		assert.Equal(t, len(enabled), countLines(a.Dockerfile, "EXPOSE "))
		for _, d := range enabled {
			assert.Equal(t, 1, strings.Count(a.Dockerfile, "EXPOSE "+strconv.Itoa(d.Port)+"\n"), d.Name)
		}
	}
}

func TestRender_DuplicatePortFailsWithNoOutput(t *testing.T) {
	t.Parallel()

	set := emulator.NewSet(
		emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		emulator.Descriptor{Name: "database", Port: 8080, Enabled: true},
	)

	a, err := recipe.Render(set, recipe.DefaultOptions())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, recipe.Artifacts{}, a)
}

func TestRender_DockerfileShape(t *testing.T) {
	t.Parallel()

	set := emulator.NewSet(
		emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		emulator.Descriptor{Name: "auth", Port: 9099, Enabled: true},
		emulator.Descriptor{Name: "ui", Port: 4000, Enabled: true},
	)

	a, err := recipe.Render(set, recipe.DefaultOptions())
	require.NoError(t, err)

	lines := strings.Split(a.Dockerfile, "\n")
	assert.Equal(t, 1, countLines(a.Dockerfile, "FROM node:20-alpine"))
	assert.Equal(t, 2, countLines(a.Dockerfile, "RUN "))
	assert.Equal(t, 1, countLines(a.Dockerfile, "WORKDIR /app"))
	assert.Equal(t, 1, countLines(a.Dockerfile, "COPY . ."))
	assert.Equal(t, 1, countLines(a.Dockerfile, "CMD "))
	assert.Contains(t, lines, "RUN apk add --no-cache openjdk17-jre-headless")
	assert.Contains(t, lines, "RUN npm install -g firebase-tools")

	// Auxiliary services are not "--only" targets; the rest follow port order.
	assert.Contains(t, a.Dockerfile,
		`CMD ["firebase", "emulators:start", "--project", "demo-project", "--only", "firestore,auth", `+
			`"--import", "/app/.emulator-data", "--export-on-exit", "/app/.emulator-data"]`)
}

func TestRender_NoDataDirDropsImportAndVolume(t *testing.T) {
	t.Parallel()

	opts := recipe.DefaultOptions()
	opts.DataDir = ""

	a, err := recipe.Render(firestoreAndUI(), opts)
	require.NoError(t, err)

	assert.NotContains(t, a.Dockerfile, "--import")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(a.Compose), &doc))
	assert.Empty(t, doc["volumes"])
}

func TestRender_ComposeStructure(t *testing.T) {
	t.Parallel()

	opts := recipe.DefaultOptions()
	opts.ProjectID = "demo-test"

	a, err := recipe.Render(firestoreAndUI(), opts)
	require.NoError(t, err)

	var doc struct {
		Services map[string]struct {
			Build struct {
				Context    string `yaml:"context"`
				Dockerfile string `yaml:"dockerfile"`
			} `yaml:"build"`
			Ports       []string `yaml:"ports"`
			Environment []string `yaml:"environment"`
			Volumes     []string `yaml:"volumes"`
		} `yaml:"services"`
		Volumes map[string]any `yaml:"volumes"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(a.Compose), &doc))

	require.Len(t, doc.Services, 1)
	svc, ok := doc.Services["emulators"]
	require.True(t, ok)

	assert.Equal(t, ".", svc.Build.Context)
	assert.Equal(t, "Dockerfile", svc.Build.Dockerfile)
	assert.Equal(t, []string{"4000:4000", "8080:8080"}, svc.Ports)
	// The UI has no client variable; firestore does, plus the project ids.
	assert.Equal(t, []string{
		"FIRESTORE_EMULATOR_HOST=localhost:8080",
		"GCLOUD_PROJECT=demo-test",
		"FIREBASE_PROJECT=demo-test",
	}, svc.Environment)
	assert.Equal(t, []string{".:/app", "emulator-data:/app/.emulator-data"}, svc.Volumes)
	assert.Contains(t, doc.Volumes, "emulator-data")
}

func TestRender_EmulatorConfigBindsAllInterfaces(t *testing.T) {
	t.Parallel()

	a, err := recipe.Render(firestoreAndUI(), recipe.DefaultOptions())
	require.NoError(t, err)

	var doc struct {
		Emulators map[string]json.RawMessage `json:"emulators"`
	}
	require.NoError(t, json.Unmarshal([]byte(a.EmulatorConfig), &doc))

	var fs struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}
	require.NoError(t, json.Unmarshal(doc.Emulators["firestore"], &fs))
	assert.Equal(t, "0.0.0.0", fs.Host)
	assert.Equal(t, 8080, fs.Port)

	var ui struct {
		Enabled bool `json:"enabled"`
		Port    int  `json:"port"`
	}
	require.NoError(t, json.Unmarshal(doc.Emulators["ui"], &ui))
	assert.True(t, ui.Enabled)
	assert.Equal(t, 4000, ui.Port)
}

func TestRender_EmulatorConfigDisablesMissingUI(t *testing.T) {
	t.Parallel()

	set := emulator.NewSet(emulator.Descriptor{Name: "auth", Port: 9099, Enabled: true})
	a, err := recipe.Render(set, recipe.DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, a.EmulatorConfig, `"enabled": false`)
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := recipe.Render(firestoreAndUI(), recipe.DefaultOptions())
	require.NoError(t, err)
	for range 5 {
		again, err := recipe.Render(firestoreAndUI(), recipe.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestArtifacts_Files(t *testing.T) {
	t.Parallel()

	opts := recipe.DefaultOptions()
	opts.ComposeFileName = "compose.emulators.yml"

	a, err := recipe.Render(firestoreAndUI(), opts)
	require.NoError(t, err)

	files := a.Files()
	require.Len(t, files, 3)
	assert.Equal(t, "Dockerfile", files[0].Name)
	assert.Equal(t, a.Dockerfile, files[0].Content)
	assert.Equal(t, "compose.emulators.yml", files[1].Name)
	assert.Equal(t, "firebase.json", files[2].Name)
}

func TestEndpoints(t *testing.T) {
	t.Parallel()

	got := recipe.Endpoints(firestoreAndUI().Enabled(), "127.0.0.1")

	require.Len(t, got, 1)
	assert.Equal(t, recipe.Endpoint{
		Service: "firestore",
		EnvVar:  "FIRESTORE_EMULATOR_HOST",
		Address: "127.0.0.1:8080",
	}, got[0])
}

func TestRender_AuxiliaryOnlyIsRejected(t *testing.T) {
	t.Parallel()

	a, err := recipe.Render(emulator.NewSet(emulator.Descriptor{Name: "ui", Port: 4000, Enabled: true}), recipe.DefaultOptions())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, recipe.Artifacts{}, a)
}
