package repository

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"missioncontrol/pkg/schema"
)

const yamlLayout = `guild_id: "491275273598402561"
memberships:
  - key: member
    role_id: "585637350529302529"
    name: Current Member
  - key: alumni
    role_id: "612059569274748969"
    name: Graduated Alumnus
roles: ["621586486793601044"]
projects: ["585634734122467339"]
channel_categories: ["614536824295260160"]
game_category: "696569774632861746"
excluded_channels: ["669328124357640222"]
`

const tomlLayout = `guild_id = "491275273598402561"
roles = ["621586486793601044"]
projects = ["585634734122467339"]
channel_categories = ["614536824295260160"]
game_category = "696569774632861746"
max_list_size = 10

[[memberships]]
key = "member"
role_id = "585637350529302529"
name = "Current Member"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadLayout_YAML(t *testing.T) {
	repo := NewRepository(writeFile(t, "layout.yaml", yamlLayout))

	layout, err := repo.ReadLayout()
	if err != nil {
		t.Fatalf("ReadLayout() failed: %v", err)
	}

	if layout.GuildID != "491275273598402561" {
		t.Errorf("GuildID = %q", layout.GuildID)
	}
	if len(layout.Memberships) != 2 || layout.Memberships[1].Name != "Graduated Alumnus" {
		t.Errorf("Memberships = %+v", layout.Memberships)
	}
	if layout.MaxListSize != schema.DefaultMaxListSize {
		t.Errorf("MaxListSize = %d, want default %d", layout.MaxListSize, schema.DefaultMaxListSize)
	}
	if !layout.IsExcluded("669328124357640222") {
		t.Error("excluded channel not loaded")
	}
}

func TestReadLayout_TOML(t *testing.T) {
	repo := NewRepository(writeFile(t, "layout.toml", tomlLayout))

	layout, err := repo.ReadLayout()
	if err != nil {
		t.Fatalf("ReadLayout() failed: %v", err)
	}

	if layout.MaxListSize != 10 {
		t.Errorf("MaxListSize = %d, want 10", layout.MaxListSize)
	}
	if m, ok := layout.Membership("member"); !ok || m.RoleID != "585637350529302529" {
		t.Errorf("Membership(member) = %+v, %v", m, ok)
	}
}

func TestReadLayout_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unsupported extension", "layout.ini", yamlLayout},
		{"malformed yaml", "layout.yaml", "guild_id: [unterminated"},
		{"invalid layout", "layout.yaml", "guild_id: \"not-an-id\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(writeFile(t, tt.file, tt.content))
			if _, err := repo.ReadLayout(); err == nil {
				t.Error("ReadLayout() expected error, got nil")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		repo := NewRepository(filepath.Join(t.TempDir(), "layout.yaml"))
		_, err := repo.ReadLayout()
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadLayout() error = %v, want not-exist", err)
		}
	})
}

func TestReadLayout_ValidationErrorIsTyped(t *testing.T) {
	repo := NewRepository(writeFile(t, "layout.yaml", "guild_id: \"1\"\n"))

	_, err := repo.ReadLayout()

	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ReadLayout() error = %v, want *schema.ValidationError", err)
	}
	if ve.Field != "memberships" {
		t.Errorf("Field = %q, want memberships", ve.Field)
	}
}

func TestWriteLayout_RoundTrip(t *testing.T) {
	for _, name := range []string{"layout.yaml", "layout.toml", "layout.json"} {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(filepath.Join(t.TempDir(), name))
			want := schema.DefaultLayout()

			if err := repo.WriteLayout(want); err != nil {
				t.Fatalf("WriteLayout() failed: %v", err)
			}

			got, err := repo.ReadLayout()
			if err != nil {
				t.Fatalf("ReadLayout() failed: %v", err)
			}
			if !reflect.DeepEqual(want, got) {
				t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
			}
		})
	}
}

func TestWriteLayout_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	repo := NewRepository(path)

	if err := repo.WriteLayout(&schema.Layout{}); err == nil {
		t.Fatal("WriteLayout() expected error for empty layout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid layout should not be written")
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"layout.yaml":     FormatYAML,
		"layout.YML":      FormatYAML,
		"conf/mc.toml":    FormatTOML,
		"/etc/layout.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		if err != nil || got != want {
			t.Errorf("FormatOf(%q) = %q, %v; want %q", path, got, err, want)
		}
	}

	if _, err := FormatOf("layout"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatOf(no ext) error = %v, want ErrUnsupportedFormat", err)
	}
}
