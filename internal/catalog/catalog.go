// Package catalog loads the static reference datasets (relief schemes, crops,
// disaster types, states) from JSON files at process start. Catalogs are
// immutable for the process lifetime; reload requires a restart.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/croppilot/croppilot/internal/domain"
)

// DisasterType is a selectable disaster category for the scheme finder form.
type DisasterType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Catalog holds all reference data. Read-only after Load.
type Catalog struct {
	Schemes       []domain.Scheme
	Crops         []domain.Crop
	DisasterTypes []DisasterType
	States        []string
}

type schemesFile struct {
	Schemes       []domain.Scheme `json:"schemes"`
	DisasterTypes []DisasterType  `json:"disaster_types"`
	States        []string        `json:"states"`
}

type cropsFile struct {
	Crops []domain.Crop `json:"crops"`
}

// Load reads both catalog files. Any read or parse failure, or an empty
// scheme list, surfaces domain.ErrCatalogUnavailable so callers can tell
// "could not evaluate" apart from "zero matches" later on.
func Load(schemesPath, cropsPath string) (*Catalog, error) {
	var sf schemesFile
	if err := readJSON(schemesPath, &sf); err != nil {
		return nil, err
	}
	if len(sf.Schemes) == 0 {
		return nil, fmt.Errorf("%w: %s contains no schemes", domain.ErrCatalogUnavailable, schemesPath)
	}

	var cf cropsFile
	if err := readJSON(cropsPath, &cf); err != nil {
		return nil, err
	}
	if len(cf.Crops) == 0 {
		return nil, fmt.Errorf("%w: %s contains no crops", domain.ErrCatalogUnavailable, cropsPath)
	}

	return &Catalog{
		Schemes:       sf.Schemes,
		Crops:         cf.Crops,
		DisasterTypes: sf.DisasterTypes,
		States:        sf.States,
	}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	return nil
}

// CropByName looks up a crop case-insensitively.
func (c *Catalog) CropByName(name string) (domain.Crop, bool) {
	for _, crop := range c.Crops {
		if strings.EqualFold(crop.Name, name) {
			return crop, true
		}
	}
	return domain.Crop{}, false
}

// DisasterTypeByID looks up a disaster type, falling back to a titled display
// form for unknown ids so the result page never shows a raw identifier.
func (c *Catalog) DisasterTypeByID(id string) DisasterType {
	for _, dt := range c.DisasterTypes {
		if strings.EqualFold(dt.ID, id) {
			return dt
		}
	}
	name := strings.ReplaceAll(id, "_", " ")
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return DisasterType{ID: id, Name: name}
}
