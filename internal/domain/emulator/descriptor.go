// Package emulator holds the service descriptor model: which emulators are
// enabled, on which ports, and which client environment variable points at
// each of them.
package emulator

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/jsamuelsen11/emuctl/internal/domain"
)

const (
	minPort = 1
	maxPort = 65535
)

// namePattern restricts service names to lowercase DNS-label style so they
// can be used verbatim in compose keys and vendor CLI flags.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,62}$`)

// Descriptor describes one emulated service.
type Descriptor struct {
	Name    string
	Port    int
	Enabled bool
}

// EnvVar returns the client environment variable that points at this
// service, or "" when the service is not a client-facing endpoint.
func (d Descriptor) EnvVar() string {
	return EnvVarFor(d.Name)
}

// Set is an immutable collection of descriptors keyed by service name.
type Set struct {
	descriptors []Descriptor
}

// NewSet builds a Set. Input order is irrelevant; the set stores descriptors
// sorted by name. Later duplicates of a name replace earlier ones.
func NewSet(descriptors ...Descriptor) Set {
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}

	out := make([]Descriptor, 0, len(byName))
	for _, d := range byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return Set{descriptors: out}
}

// All returns every descriptor sorted by name. The slice is a copy.
func (s Set) All() []Descriptor {
	out := make([]Descriptor, len(s.descriptors))
	copy(out, s.descriptors)
	return out
}

// Enabled returns the enabled descriptors sorted by port ascending, ties
// broken by name.
func (s Set) Enabled() []Descriptor {
	out := make([]Descriptor, 0, len(s.descriptors))
	for _, d := range s.descriptors {
		if d.Enabled {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Port != out[j].Port {
			return out[i].Port < out[j].Port
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Lookup returns the descriptor for name.
func (s Set) Lookup(name string) (Descriptor, bool) {
	for _, d := range s.descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Len returns the number of descriptors, enabled or not.
func (s Set) Len() int {
	return len(s.descriptors)
}

// Validate checks service names, port ranges, and port uniqueness across
// enabled services. Disabled services are only checked for a valid name.
// Returns a *domain.ValidationError keyed by "services.<name>.<field>".
func (s Set) Validate() error {
	fields := make(map[string]string)

	enabled, primary := 0, 0
	for _, d := range s.descriptors {
		if !namePattern.MatchString(d.Name) {
			fields[fmt.Sprintf("services.%s.name", d.Name)] =
				fmt.Sprintf("must match %s", namePattern.String())
		}
		if !d.Enabled {
			continue
		}
		enabled++
		if !IsAuxiliary(d.Name) {
			primary++
		}
		if d.Port < minPort || d.Port > maxPort {
			fields[fmt.Sprintf("services.%s.port", d.Name)] =
				fmt.Sprintf("must be between %d and %d, got %d", minPort, maxPort, d.Port)
		}
	}

	switch {
	case enabled == 0 && len(fields) == 0:
		fields["services"] = "at least one service must be enabled"
	case enabled > 0 && primary == 0:
		// The vendor CLI refuses to start with only the UI, hub or logging.
		fields["services"] = "at least one non-auxiliary service must be enabled"
	}

	// Enabled() is port-ordered, so the first owner of a port is stable.
	owners := make(map[int]string)
	for _, d := range s.Enabled() {
		if owner, taken := owners[d.Port]; taken {
			fields[fmt.Sprintf("services.%s.port", d.Name)] =
				fmt.Sprintf("port %d already used by %s", d.Port, owner)
			continue
		}
		owners[d.Port] = d.Name
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
