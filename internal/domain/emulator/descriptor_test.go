package emulator

import (
	"errors"
	"testing"

	"github.com/jsamuelsen11/emuctl/internal/domain"
)

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatalf("Validate() = nil, want ValidationError with field %q", field)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("errors.Is(err, ErrValidation) = false, got %v", err)
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError.Fields missing key %q, got %v", field, verr.Fields)
	}
}

func TestSet_Enabled_SortedByPort(t *testing.T) {
	t.Parallel()

	s := NewSet(
		Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		Descriptor{Name: "ui", Port: 4000, Enabled: true},
		Descriptor{Name: "auth", Port: 9099, Enabled: false},
	)

	got := s.Enabled()
	if len(got) != 2 {
		t.Fatalf("len(Enabled()) = %d, want 2", len(got))
	}
	if got[0].Name != "ui" || got[1].Name != "firestore" {
		t.Errorf("Enabled() order = [%s %s], want [ui firestore]", got[0].Name, got[1].Name)
	}
}

func TestSet_All_SortedByName(t *testing.T) {
	t.Parallel()

	s := NewSet(
		Descriptor{Name: "ui", Port: 4000, Enabled: true},
		Descriptor{Name: "auth", Port: 9099},
	)

	all := s.All()
	if len(all) != 2 || all[0].Name != "auth" || all[1].Name != "ui" {
		t.Errorf("All() = %+v, want auth then ui", all)
	}

	all[0].Port = 1
	if d, _ := s.Lookup("auth"); d.Port != 9099 {
		t.Error("All() returned a slice aliasing the set")
	}
}

func TestNewSet_LastDuplicateNameWins(t *testing.T) {
	t.Parallel()

	s := NewSet(
		Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		Descriptor{Name: "firestore", Port: 8081, Enabled: true},
	)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	d, ok := s.Lookup("firestore")
	if !ok || d.Port != 8081 {
		t.Errorf("Lookup(firestore) = %+v, %v; want port 8081", d, ok)
	}
}

func TestSet_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		set       Set
		wantErr   bool
		wantField string
	}{
		{
			name: "unique ports pass",
			set: NewSet(
				Descriptor{Name: "firestore", Port: 8080, Enabled: true},
				Descriptor{Name: "ui", Port: 4000, Enabled: true},
			),
		},
		{
			name: "duplicate enabled port fails on the later name",
			set: NewSet(
				Descriptor{Name: "firestore", Port: 8080, Enabled: true},
				Descriptor{Name: "database", Port: 8080, Enabled: true},
			),
			wantErr:   true,
			wantField: "services.firestore.port",
		},
		{
			name: "duplicate port on disabled service passes",
			set: NewSet(
				Descriptor{Name: "firestore", Port: 8080, Enabled: true},
				Descriptor{Name: "database", Port: 8080, Enabled: false},
			),
		},
		{
			name:      "port zero fails",
			set:       NewSet(Descriptor{Name: "ui", Port: 0, Enabled: true}),
			wantErr:   true,
			wantField: "services.ui.port",
		},
		{
			name:      "port above range fails",
			set:       NewSet(Descriptor{Name: "ui", Port: 70000, Enabled: true}),
			wantErr:   true,
			wantField: "services.ui.port",
		},
		{
			name:      "uppercase name fails",
			set:       NewSet(Descriptor{Name: "FireStore", Port: 8080, Enabled: true}),
			wantErr:   true,
			wantField: "services.FireStore.name",
		},
		{
			name:      "nothing enabled fails",
			set:       NewSet(Descriptor{Name: "ui", Port: 4000}),
			wantErr:   true,
			wantField: "services",
		},
		{
			name: "only auxiliary services fails",
			set: NewSet(
				Descriptor{Name: "ui", Port: 4000, Enabled: true},
				Descriptor{Name: "hub", Port: 4400, Enabled: true},
				Descriptor{Name: "firestore", Port: 8080},
			),
			wantErr:   true,
			wantField: "services",
		},
		{
			name: "auxiliary beside a real emulator passes",
			set: NewSet(
				Descriptor{Name: "logging", Port: 4500, Enabled: true},
				Descriptor{Name: "pubsub", Port: 8085, Enabled: true},
			),
		},
		{
			name:      "empty set fails",
			set:       NewSet(),
			wantErr:   true,
			wantField: "services",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.set.Validate()
			if tt.wantErr {
				requireValidationField(t, err, tt.wantField)
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestSet_Validate_DuplicateNamesOwner(t *testing.T) {
	t.Parallel()

	s := NewSet(
		Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		Descriptor{Name: "database", Port: 8080, Enabled: true},
	)

	var verr *domain.ValidationError
	if !errors.As(s.Validate(), &verr) {
		t.Fatal("Validate() did not return *ValidationError")
	}
	// Ties on port break by name, so database owns 8080.
	if got := verr.Fields["services.firestore.port"]; got != "port 8080 already used by database" {
		t.Errorf("message = %q", got)
	}
}

func TestEnvVarFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"firestore", "FIRESTORE_EMULATOR_HOST"},
		{"auth", "FIREBASE_AUTH_EMULATOR_HOST"},
		{"ui", ""},
		{"data-connect", "DATA_CONNECT_EMULATOR_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EnvVarFor(tt.name); got != tt.want {
				t.Errorf("EnvVarFor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCatalog_UniqueDefaultPorts(t *testing.T) {
	t.Parallel()

	seen := make(map[int]string)
	for _, k := range Catalog() {
		if other, ok := seen[k.DefaultPort]; ok {
			t.Errorf("%s and %s share default port %d", k.Name, other, k.DefaultPort)
		}
		seen[k.DefaultPort] = k.Name
	}
}

func TestSet_Validate_AuxiliaryOnlyMessage(t *testing.T) {
	t.Parallel()

	err := NewSet(Descriptor{Name: "ui", Port: 4000, Enabled: true}).Validate()

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}
	if got, want := verr.Fields["services"], "at least one non-auxiliary service must be enabled"; got != want {
		t.Errorf("Fields[services] = %q, want %q", got, want)
	}
}
