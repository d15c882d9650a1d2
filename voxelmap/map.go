// Package voxelmap provides a dense axis-aligned 3D occupancy grid with
// world/grid coordinate conversions, usable as a collision source for
// search-based planners.
package voxelmap

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Occupancy values stored per cell. Anything above zero counts as occupied;
// unknown cells are treated as free for planning purposes.
const (
	ValFree     int8 = 0
	ValUnknown  int8 = -1
	ValOccupied int8 = 100
)

// Cell addresses a voxel by integer grid coordinates.
type Cell struct {
	I, J, K int
}

// Grid is a dense voxel grid with an origin, per-axis extents and a uniform
// resolution. The zero cell's corner sits at the origin.
type Grid struct {
	origin r3.Vector
	dim    Cell
	res    float64
	data   []int8
}

// New builds a grid from an origin, integer extents, a resolution and a flattened
// occupancy array in x-fastest order. A nil data slice yields an all-free grid.
func New(origin r3.Vector, dim Cell, res float64, data []int8) (*Grid, error) {
	if dim.I <= 0 || dim.J <= 0 || dim.K <= 0 {
		return nil, errors.Errorf("grid dimensions must be positive, got %v", dim)
	}
	if res <= 0 {
		return nil, errors.Errorf("grid resolution must be positive, got %v", res)
	}
	n := dim.I * dim.J * dim.K
	if data == nil {
		data = make([]int8, n)
	} else if len(data) != n {
		return nil, errors.Errorf("occupancy data has %d cells, expected %d", len(data), n)
	}
	return &Grid{origin: origin, dim: dim, res: res, data: data}, nil
}

// Origin returns the world position of the grid's minimum corner.
func (g *Grid) Origin() r3.Vector {
	return g.origin
}

// Dim returns the grid's integer extents.
func (g *Grid) Dim() Cell {
	return g.dim
}

// Resolution returns the edge length of one cell.
func (g *Grid) Resolution() float64 {
	return g.res
}

// World returns the grid's extent in world units.
func (g *Grid) World() r3.Vector {
	return r3.Vector{
		X: float64(g.dim.I) * g.res,
		Y: float64(g.dim.J) * g.res,
		Z: float64(g.dim.K) * g.res,
	}
}

// FloatToInt converts a world position to the cell containing it.
func (g *Grid) FloatToInt(pt r3.Vector) Cell {
	return Cell{
		I: int(math.Floor((pt.X - g.origin.X) / g.res)),
		J: int(math.Floor((pt.Y - g.origin.Y) / g.res)),
		K: int(math.Floor((pt.Z - g.origin.Z) / g.res)),
	}
}

// IntToFloat converts a cell to the world position of its center. The conversions
// round-trip: FloatToInt(IntToFloat(c)) == c for in-range cells.
func (g *Grid) IntToFloat(c Cell) r3.Vector {
	return r3.Vector{
		X: g.origin.X + (float64(c.I)+0.5)*g.res,
		Y: g.origin.Y + (float64(c.J)+0.5)*g.res,
		Z: g.origin.Z + (float64(c.K)+0.5)*g.res,
	}
}

// InBounds reports whether the cell lies within the grid extents.
func (g *Grid) InBounds(c Cell) bool {
	return c.I >= 0 && c.I < g.dim.I &&
		c.J >= 0 && c.J < g.dim.J &&
		c.K >= 0 && c.K < g.dim.K
}

// IsFree reports whether the cell is not occupied. Out-of-bounds cells are never
// free.
func (g *Grid) IsFree(c Cell) bool {
	return g.InBounds(c) && g.data[g.index(c)] <= 0
}

// IsFreePoint reports whether the cell containing the world position is free.
func (g *Grid) IsFreePoint(pt r3.Vector) bool {
	return g.IsFree(g.FloatToInt(pt))
}

// Set writes an occupancy value into a cell.
func (g *Grid) Set(c Cell, val int8) error {
	if !g.InBounds(c) {
		return errors.Errorf("cell %v out of bounds %v", c, g.dim)
	}
	g.data[g.index(c)] = val
	return nil
}

func (g *Grid) index(c Cell) int {
	return c.I + g.dim.I*(c.J+g.dim.J*c.K)
}
