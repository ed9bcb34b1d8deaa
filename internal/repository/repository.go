package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"missioncontrol/pkg/schema"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for layout files that are neither YAML,
// TOML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported layout format")

// Format is a layout file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Repository handles file I/O for the community layout.
type Repository struct {
	path string
}

// NewRepository creates a repository backed by the layout file at path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the layout file path.
func (r *Repository) Path() string {
	return r.path
}

// ReadLayout reads, defaults and validates the layout.
func (r *Repository) ReadLayout() (*schema.Layout, error) {
	format, err := FormatOf(r.path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	layout, err := DecodeLayout(data, format)
	if err != nil {
		return nil, err
	}

	layout.SetDefaults()
	if err := schema.ValidateLayout(layout); err != nil {
		return nil, fmt.Errorf("validate layout %s: %w", r.path, err)
	}
	return layout, nil
}

// WriteLayout validates the layout and writes it using an atomic transaction.
func (r *Repository) WriteLayout(layout *schema.Layout) error {
	if err := schema.ValidateLayout(layout); err != nil {
		return fmt.Errorf("validate layout: %w", err)
	}

	format, err := FormatOf(r.path)
	if err != nil {
		return err
	}

	data, err := EncodeLayout(layout, format)
	if err != nil {
		return err
	}

	tx := NewFileTx(r.path)
	if err := tx.Begin(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := tx.Write(data); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("rollback failed: %v", rbErr)
		}
		return fmt.Errorf("write layout: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("rollback failed: %v", rbErr)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// DecodeLayout parses a layout in the given format.
func DecodeLayout(data []byte, format Format) (*schema.Layout, error) {
	var layout schema.Layout
	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &layout)
	case FormatTOML:
		err = toml.Unmarshal(data, &layout)
	case FormatJSON:
		err = json.Unmarshal(data, &layout)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s layout: %w", format, err)
	}

	return &layout, nil
}

// EncodeLayout serializes a layout in the given format.
func EncodeLayout(layout *schema.Layout, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(layout)
		if err != nil {
			return nil, fmt.Errorf("marshal layout: %w", err)
		}
		return data, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(layout); err != nil {
			return nil, fmt.Errorf("marshal layout: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(layout, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal layout: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
