package voxelmap

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func writeMapFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.yaml")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestReadFile(t *testing.T) {
	path := writeMapFile(t, `
origin: [0.0, -5.0, 0.0]
dim: [4, 2, 1]
resolution: 1.0
data: [0, 0, 100, 0, 0, 0, 0, 0]
`)
	grid, err := ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, grid.Dim(), test.ShouldResemble, Cell{I: 4, J: 2, K: 1})
	test.That(t, grid.Origin().Y, test.ShouldAlmostEqual, -5)
	test.That(t, grid.IsFree(Cell{I: 2, J: 0}), test.ShouldBeFalse)
	test.That(t, grid.IsFree(Cell{I: 1, J: 0}), test.ShouldBeTrue)
}

func TestReadFileOmittedData(t *testing.T) {
	path := writeMapFile(t, `
origin: [0.0, 0.0, 0.0]
dim: [3, 3, 1]
resolution: 0.5
`)
	grid, err := ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, grid.IsFree(Cell{I: 1, J: 1}), test.ShouldBeTrue)
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read map file")

	_, err = ReadFile(writeMapFile(t, "dim: [not, a, number"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot parse map file")

	_, err = ReadFile(writeMapFile(t, "origin: [0.0, 0.0]\ndim: [2, 2, 1]\nresolution: 1.0\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "origin")

	_, err = ReadFile(writeMapFile(t, "origin: [0.0, 0.0, 0.0]\ndim: [2, 2]\nresolution: 1.0\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "dim")

	_, err = ReadFile(writeMapFile(t, "origin: [0.0, 0.0, 0.0]\ndim: [2, 2, 1]\nresolution: 1.0\ndata: [0]\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "occupancy data")
}
