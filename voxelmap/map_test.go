package voxelmap

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewValidation(t *testing.T) {
	_, err := New(r3.Vector{}, Cell{I: 0, J: 5, K: 1}, 1.0, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "dimensions")

	_, err = New(r3.Vector{}, Cell{I: 5, J: 5, K: 1}, 0, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "resolution")

	_, err = New(r3.Vector{}, Cell{I: 5, J: 5, K: 1}, 1.0, make([]int8, 7))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 25")
}

func TestConversionsRoundTrip(t *testing.T) {
	grid, err := New(r3.Vector{X: -2, Y: 3}, Cell{I: 8, J: 6, K: 2}, 0.5, nil)
	test.That(t, err, test.ShouldBeNil)

	for _, c := range []Cell{{0, 0, 0}, {7, 5, 1}, {3, 2, 0}} {
		test.That(t, grid.FloatToInt(grid.IntToFloat(c)), test.ShouldResemble, c)
	}

	// points anywhere within a cell map to that cell
	test.That(t, grid.FloatToInt(r3.Vector{X: -1.99, Y: 3.01}), test.ShouldResemble, Cell{0, 0, 0})
	test.That(t, grid.FloatToInt(r3.Vector{X: -1.51, Y: 3.49}), test.ShouldResemble, Cell{0, 0, 0})
}

func TestOccupancy(t *testing.T) {
	grid, err := New(r3.Vector{}, Cell{I: 4, J: 4, K: 1}, 1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	occupied := Cell{I: 2, J: 1}
	test.That(t, grid.IsFree(occupied), test.ShouldBeTrue)
	test.That(t, grid.Set(occupied, ValOccupied), test.ShouldBeNil)
	test.That(t, grid.IsFree(occupied), test.ShouldBeFalse)
	test.That(t, grid.IsFreePoint(r3.Vector{X: 2.5, Y: 1.5}), test.ShouldBeFalse)
	test.That(t, grid.IsFreePoint(r3.Vector{X: 0.5, Y: 0.5}), test.ShouldBeTrue)

	// unknown cells count as free for planning
	unknown := Cell{I: 3, J: 3}
	test.That(t, grid.Set(unknown, ValUnknown), test.ShouldBeNil)
	test.That(t, grid.IsFree(unknown), test.ShouldBeTrue)

	// out-of-bounds cells are never free
	test.That(t, grid.IsFree(Cell{I: -1}), test.ShouldBeFalse)
	test.That(t, grid.IsFree(Cell{I: 4, J: 0}), test.ShouldBeFalse)
	test.That(t, grid.IsFreePoint(r3.Vector{X: -0.5, Y: 0.5}), test.ShouldBeFalse)

	err = grid.Set(Cell{I: 9, J: 9}, ValOccupied)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of bounds")
}

func TestWorldExtent(t *testing.T) {
	grid, err := New(r3.Vector{X: 1}, Cell{I: 4, J: 2, K: 1}, 0.5, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, grid.World().X, test.ShouldAlmostEqual, 2.0)
	test.That(t, grid.World().Y, test.ShouldAlmostEqual, 1.0)
	test.That(t, grid.Resolution(), test.ShouldAlmostEqual, 0.5)
	test.That(t, grid.Dim(), test.ShouldResemble, Cell{I: 4, J: 2, K: 1})
	test.That(t, grid.Origin().X, test.ShouldAlmostEqual, 1.0)
}
