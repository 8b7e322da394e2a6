// Package catalog holds the lookup tables behind the lead form: which
// locations exist, which of them are split into blocks, which property
// types a location offers and which sizes a property type comes in.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	ErrDuplicateLocation = errors.New("duplicate location id")
	ErrUnknownCatalog    = errors.New("location refers to unknown catalog")
	ErrEmptyCatalog      = errors.New("catalog has no property types")
	ErrNoLocations       = errors.New("catalog has no locations")
)

type Location struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Catalog string   `yaml:"catalog"`
	Blocks  []string `yaml:"blocks"`
}

// HasBlocks reports whether the location is divided into blocks.
func (l Location) HasBlocks() bool {
	return len(l.Blocks) > 0
}

type PropertyType struct {
	Name  string   `yaml:"name"`
	Sizes []string `yaml:"sizes"`
}

type PropertyCatalog struct {
	Types []PropertyType `yaml:"types"`
}

type Catalog struct {
	Catalogs  map[string]PropertyCatalog `yaml:"catalogs"`
	Locations []Location                 `yaml:"locations"`

	byID map[string]Location
}

// Load reads a catalog file. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	return Parse(data)
}

func MustLoad(path string) *Catalog {
	c, err := Load(path)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return MustLoad("")
}

func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.byID = make(map[string]Location, len(c.Locations))
	for _, loc := range c.Locations {
		c.byID[loc.ID] = loc
	}

	return c, nil
}

func (c *Catalog) Validate() error {
	if len(c.Locations) == 0 {
		return ErrNoLocations
	}

	for name, pc := range c.Catalogs {
		if len(pc.Types) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyCatalog, name)
		}
	}

	seen := make(map[string]struct{}, len(c.Locations))
	for _, loc := range c.Locations {
		if _, ok := seen[loc.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateLocation, loc.ID)
		}
		seen[loc.ID] = struct{}{}

		if _, ok := c.Catalogs[loc.Catalog]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrUnknownCatalog, loc.ID, loc.Catalog)
		}
	}

	return nil
}

func (c *Catalog) Location(id string) (Location, bool) {
	loc, ok := c.byID[id]
	return loc, ok
}

// HasBlock reports whether block belongs to the location.
func (c *Catalog) HasBlock(locationID, block string) bool {
	loc, ok := c.byID[locationID]
	if !ok {
		return false
	}
	return slices.Contains(loc.Blocks, block)
}

// TypesFor returns the property types offered at a location, in catalog order.
func (c *Catalog) TypesFor(locationID string) []string {
	pc, ok := c.propertyCatalog(locationID)
	if !ok {
		return nil
	}

	types := make([]string, 0, len(pc.Types))
	for _, t := range pc.Types {
		types = append(types, t.Name)
	}
	return types
}

// SizesFor returns the sizes of a property type at a location. A type the
// location's catalog does not know yields no sizes.
func (c *Catalog) SizesFor(locationID, propertyType string) []string {
	pc, ok := c.propertyCatalog(locationID)
	if !ok {
		return nil
	}

	for _, t := range pc.Types {
		if t.Name == propertyType {
			return slices.Clone(t.Sizes)
		}
	}
	return nil
}

func (c *Catalog) propertyCatalog(locationID string) (PropertyCatalog, bool) {
	loc, ok := c.byID[locationID]
	if !ok {
		return PropertyCatalog{}, false
	}
	pc, ok := c.Catalogs[loc.Catalog]
	return pc, ok
}
