package voxelmap

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// mapFile is the on-disk YAML layout: a world origin, integer extents, the cell
// resolution, and a flattened occupancy array in x-fastest order. The data field
// may be omitted for an obstacle-free map.
type mapFile struct {
	Origin     []float64 `yaml:"origin"`
	Dim        []int     `yaml:"dim"`
	Resolution float64   `yaml:"resolution"`
	Data       []int8    `yaml:"data"`
}

// ReadFile loads a voxel map from a YAML file. A missing or unparsable file is a
// configuration error, reported before any planning can begin.
func ReadFile(path string) (*Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read map file %q", path)
	}
	var mf mapFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, errors.Wrapf(err, "cannot parse map file %q", path)
	}
	if len(mf.Origin) != 3 {
		return nil, errors.Errorf("map file %q: origin must have 3 components, got %d", path, len(mf.Origin))
	}
	if len(mf.Dim) != 3 {
		return nil, errors.Errorf("map file %q: dim must have 3 components, got %d", path, len(mf.Dim))
	}
	origin := r3.Vector{X: mf.Origin[0], Y: mf.Origin[1], Z: mf.Origin[2]}
	grid, err := New(origin, Cell{I: mf.Dim[0], J: mf.Dim[1], K: mf.Dim[2]}, mf.Resolution, mf.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "map file %q", path)
	}
	return grid, nil
}
