package emulator

import "strings"

// Kind is a known emulator of the suite.
type Kind struct {
	Name        string
	DefaultPort int
	// EnvVar is the variable client SDKs read to find the emulator. Empty for
	// services that are not client endpoints (the UI, the log stream).
	EnvVar string
	// HTTPPath, when set, is probed over HTTP instead of a bare TCP connect.
	HTTPPath string
	// Auxiliary kinds are started implicitly by the vendor CLI and are not
	// valid "--only" targets.
	Auxiliary bool
}

// catalog lists the emulators the vendor CLI knows about, by default port.
var catalog = []Kind{
	{Name: "ui", DefaultPort: 4000, HTTPPath: "/", Auxiliary: true},
	{Name: "hub", DefaultPort: 4400, EnvVar: "FIREBASE_EMULATOR_HUB", HTTPPath: "/emulators", Auxiliary: true},
	{Name: "logging", DefaultPort: 4500, Auxiliary: true},
	{Name: "hosting", DefaultPort: 5000, EnvVar: "FIREBASE_HOSTING_EMULATOR_HOST"},
	{Name: "functions", DefaultPort: 5001, EnvVar: "FUNCTIONS_EMULATOR_HOST"},
	{Name: "firestore", DefaultPort: 8080, EnvVar: "FIRESTORE_EMULATOR_HOST"},
	{Name: "pubsub", DefaultPort: 8085, EnvVar: "PUBSUB_EMULATOR_HOST"},
	{Name: "database", DefaultPort: 9000, EnvVar: "FIREBASE_DATABASE_EMULATOR_HOST"},
	{Name: "auth", DefaultPort: 9099, EnvVar: "FIREBASE_AUTH_EMULATOR_HOST"},
	{Name: "storage", DefaultPort: 9199, EnvVar: "FIREBASE_STORAGE_EMULATOR_HOST"},
	{Name: "eventarc", DefaultPort: 9299, EnvVar: "EVENTARC_EMULATOR"},
}

// Catalog returns a copy of the known emulator kinds ordered by default port.
func Catalog() []Kind {
	out := make([]Kind, len(catalog))
	copy(out, catalog)
	return out
}

// LookupKind returns the known kind for name.
func LookupKind(name string) (Kind, bool) {
	for _, k := range catalog {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// EnvVarFor returns the client environment variable for a service name.
// Unknown services get "<NAME>_EMULATOR_HOST" with dashes mapped to
// underscores.
func EnvVarFor(name string) string {
	if k, ok := LookupKind(name); ok {
		return k.EnvVar
	}
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_EMULATOR_HOST"
}

// HTTPPathFor returns the HTTP readiness path for a service name, or "".
func HTTPPathFor(name string) string {
	if k, ok := LookupKind(name); ok {
		return k.HTTPPath
	}
	return ""
}

// IsAuxiliary reports whether the service is started implicitly by the
// vendor CLI rather than selected with "--only".
func IsAuxiliary(name string) bool {
	k, ok := LookupKind(name)
	return ok && k.Auxiliary
}

// IsUI reports whether the service is the web UI, which the vendor config
// models separately from the emulators proper.
func IsUI(name string) bool {
	return name == "ui"
}
