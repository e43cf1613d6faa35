// Package catalog holds the canonical list of shoe-care services written by a seed run.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shoecare/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Version is the catalog file format this package reads.
const Version = 1

//go:embed services.yaml
var embedded []byte

// File is the on-disk catalog layout.
type File struct {
	Version  int          `yaml:"version" toml:"version" json:"version"`
	Services []ServiceDef `yaml:"services" toml:"services" json:"services"`
}

// ServiceDef is one catalog entry. Pointer fields distinguish "omitted" from the zero value.
type ServiceDef struct {
	Title        string   `yaml:"title" toml:"title" json:"title"`
	Description  string   `yaml:"description" toml:"description" json:"description"`
	Price        string   `yaml:"price" toml:"price" json:"price"`
	Turnaround   string   `yaml:"turnaround" toml:"turnaround" json:"turnaround"`
	PopularCount *string  `yaml:"popularCount" toml:"popularCount" json:"popularCount"`
	Image        string   `yaml:"image" toml:"image" json:"image"`
	Rating       float64  `yaml:"rating" toml:"rating" json:"rating"`
	Features     []string `yaml:"features" toml:"features" json:"features"`
	Icon         string   `yaml:"icon" toml:"icon" json:"icon"`
	IsActive     *bool    `yaml:"isActive" toml:"isActive" json:"isActive"`
}

// Load returns the embedded catalog with image references resolved.
func Load(resolver ImageResolver) ([]models.ServiceRecord, error) {
	f, err := decodeYAML(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return f.Records(resolver)
}

// LoadFile reads a catalog from path. The format follows the extension: .yaml, .yml, .toml or .json.
func LoadFile(path string, resolver ImageResolver) ([]models.ServiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err = decodeYAML(data)
	case ".toml":
		f = &File{}
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(f)
	case ".json":
		f = &File{}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f.Records(resolver)
}

func decodeYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Records converts the entries into service records, applying catalog defaults and resolving images.
func (f *File) Records(resolver ImageResolver) ([]models.ServiceRecord, error) {
	if f.Version != Version {
		return nil, fmt.Errorf("unsupported catalog version %d (want %d)", f.Version, Version)
	}
	if len(f.Services) == 0 {
		return nil, errors.New("catalog has no services")
	}

	records := make([]models.ServiceRecord, 0, len(f.Services))
	seen := make(map[string]struct{}, len(f.Services))
	for i, def := range f.Services {
		if _, dup := seen[def.Title]; dup {
			return nil, fmt.Errorf("service %d: duplicate title %q", i, def.Title)
		}
		seen[def.Title] = struct{}{}

		rec, err := def.record(resolver)
		if err != nil {
			return nil, fmt.Errorf("service %d (%s): %w", i, def.Title, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (d ServiceDef) record(resolver ImageResolver) (models.ServiceRecord, error) {
	if d.Image == "" {
		return models.ServiceRecord{}, errors.New("image is required")
	}
	imageURL, err := resolver.Resolve(d.Image)
	if err != nil {
		return models.ServiceRecord{}, err
	}

	rec := models.ServiceRecord{
		Title:              d.Title,
		Description:        d.Description,
		Price:              d.Price,
		Turnaround:         d.Turnaround,
		PopularCount:       models.DefaultPopularCount,
		BackgroundImageURL: imageURL,
		Rating:             d.Rating,
		Features:           append([]string{}, d.Features...),
		Icon:               d.Icon,
		IsActive:           true,
	}
	if d.PopularCount != nil {
		rec.PopularCount = *d.PopularCount
	}
	if d.IsActive != nil {
		rec.IsActive = *d.IsActive
	}
	return rec, nil
}
