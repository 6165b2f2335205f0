// Package storefile reads the store seed catalog from disk. JSON and YAML are both
// accepted since every JSON document is valid YAML.
//
// Expected shape:
//
//	[
//	  {"name": "Ataşehir MMM Migros", "lat": 40.9923307, "lng": 29.1244229},
//	  {"name": "Novada MMM Migros", "lat": 40.986106, "lng": 29.1161293, "radius": 50}
//	]
package storefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"couriertracking/internal/core/application/usecases/commands"

	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned when the file holds no stores.
var ErrEmptyCatalog = errors.New("store catalog is empty")

type entry struct {
	Name   string   `yaml:"name"`
	Lat    *float64 `yaml:"lat"`
	Lng    *float64 `yaml:"lng"`
	Radius float64  `yaml:"radius"`
}

// Load reads the catalog at path.
func Load(path string) ([]commands.StoreSeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store catalog: %w", err)
	}
	defer f.Close()

	seeds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seeds, nil
}

// Decode parses a catalog. Entries missing a coordinate are rejected so that a typo
// never places a store at 0,0.
func Decode(r io.Reader) ([]commands.StoreSeed, error) {
	var entries []entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("decode store catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	var errList []error
	seeds := make([]commands.StoreSeed, 0, len(entries))
	for i, e := range entries {
		if e.Lat == nil || e.Lng == nil {
			errList = append(errList, fmt.Errorf("stores[%d] %q: lat and lng are required", i, e.Name))
			continue
		}
		seeds = append(seeds, commands.StoreSeed{
			Name:         e.Name,
			Latitude:     *e.Lat,
			Longitude:    *e.Lng,
			RadiusMeters: e.Radius,
		})
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return seeds, nil
}
