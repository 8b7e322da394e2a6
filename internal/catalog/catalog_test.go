package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	dhurali, ok := c.Location("dhurali")
	require.True(t, ok)
	assert.Equal(t, "Sector 101 Dhurali", dhurali.Name)
	assert.False(t, dhurali.HasBlocks())

	aero, ok := c.Location("aerotropolis")
	require.True(t, ok)
	assert.True(t, aero.HasBlocks())
	assert.True(t, c.HasBlock("aerotropolis", "B"))
	assert.False(t, c.HasBlock("aerotropolis", "Z"))
	assert.False(t, c.HasBlock("dhurali", "A"))
}

func TestTypesFor(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Industrial Plots", "Showrooms"}, c.TypesFor("dhurali"))
	assert.Equal(t, []string{"Residential", "Commercial"}, c.TypesFor("aerotropolis"))
	assert.Equal(t, []string{"Residential", "Commercial"}, c.TypesFor("eco_city_2"))
	assert.Nil(t, c.TypesFor("nowhere"))
}

func TestSizesFor(t *testing.T) {
	c := Default()

	tests := []struct {
		name     string
		location string
		propType string
		want     []string
	}{
		{"residential", "aerotropolis", "Residential", []string{"100 Gaj", "150 Gaj", "200 Gaj", "300 Gaj", "500 Gaj"}},
		{"commercial", "eco_city_1", "Commercial", []string{"25 Gaj Booth", "60 Gaj Bay Shop", "100 Gaj Showroom", "200 Gaj Showroom"}},
		{"industrial plots", "dhurali", "Industrial Plots", []string{"275 Gaj", "550 Gaj"}},
		{"showrooms", "dhurali", "Showrooms", []string{"60 Gaj Bay Shop", "100 Gaj Showroom", "200 Gaj Showroom"}},
		{"type from other catalog", "dhurali", "Residential", nil},
		{"unknown type", "aerotropolis", "Villa", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.SizesFor(tt.location, tt.propType))
		})
	}
}

func TestSizesFor_ReturnsCopy(t *testing.T) {
	c := Default()

	sizes := c.SizesFor("dhurali", "Industrial Plots")
	sizes[0] = "changed"

	assert.Equal(t, "275 Gaj", c.SizesFor("dhurali", "Industrial Plots")[0])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{
			name: "no locations",
			data: "catalogs:\n  s:\n    types:\n      - name: A\n",
			err:  ErrNoLocations,
		},
		{
			name: "unknown catalog",
			data: "catalogs:\n  s:\n    types:\n      - name: A\nlocations:\n  - id: x\n    name: X\n    catalog: other\n",
			err:  ErrUnknownCatalog,
		},
		{
			name: "duplicate location",
			data: "catalogs:\n  s:\n    types:\n      - name: A\nlocations:\n  - id: x\n    catalog: s\n  - id: x\n    catalog: s\n",
			err:  ErrDuplicateLocation,
		},
		{
			name: "empty catalog",
			data: "catalogs:\n  s:\n    types: []\nlocations:\n  - id: x\n    catalog: s\n",
			err:  ErrEmptyCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "catalogs:\n  s:\n    types:\n      - name: Farm\n        sizes: [1 Acre]\nlocations:\n  - id: x\n    name: X\n    catalog: s\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 Acre"}, c.SizesFor("x", "Farm"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
