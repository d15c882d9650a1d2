// Package render rasterizes planning results over a voxel map into 2D images for
// inspection and debugging. It is a diagnostic surface only; the planner does not
// depend on it.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r3"

	"github.com/tlin442/motion-primitive-library/voxelmap"
)

const defaultPixelsPerUnit = 25

// Options controls the output raster.
type Options struct {
	// PixelsPerUnit scales world units to pixels; zero selects a default.
	PixelsPerUnit float64
}

// Result bundles everything worth drawing about one planning call.
type Result struct {
	Start    r3.Vector
	Goal     r3.Vector
	CloseSet []r3.Vector
	Path     []r3.Vector
}

// Draw renders a top-down x-y view of the grid: occupied cells in black, expanded
// states in blue, start and goal in red, and the sampled trajectory as a red
// polyline. A column counts as occupied if any of its cells is.
func Draw(grid *voxelmap.Grid, res Result, opts Options) image.Image {
	scale := opts.PixelsPerUnit
	if scale <= 0 {
		scale = defaultPixelsPerUnit
	}
	ext := grid.World()
	w := int(ext.X * scale)
	h := int(ext.Y * scale)

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	origin := grid.Origin()
	toPx := func(pt r3.Vector) (float64, float64) {
		// world y grows up, image y grows down
		return (pt.X - origin.X) * scale, float64(h) - (pt.Y-origin.Y)*scale
	}

	cellPx := grid.Resolution() * scale
	dim := grid.Dim()
	for i := 0; i < dim.I; i++ {
		for j := 0; j < dim.J; j++ {
			if columnFree(grid, i, j) {
				continue
			}
			center := grid.IntToFloat(voxelmap.Cell{I: i, J: j})
			x, y := toPx(center)
			dc.SetColor(color.Black)
			dc.DrawRectangle(x-cellPx/2, y-cellPx/2, cellPx, cellPx)
			dc.Fill()
		}
	}

	for _, pt := range res.CloseSet {
		x, y := toPx(pt)
		dc.SetColor(color.RGBA{100, 100, 200, 255})
		dc.DrawPoint(x, y, 2)
		dc.Fill()
	}

	if len(res.Path) > 1 {
		dc.SetColor(color.RGBA{212, 0, 0, 255})
		dc.SetLineWidth(3)
		x, y := toPx(res.Path[0])
		dc.MoveTo(x, y)
		for _, pt := range res.Path[1:] {
			x, y = toPx(pt)
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}

	for _, pt := range []r3.Vector{res.Start, res.Goal} {
		x, y := toPx(pt)
		dc.SetColor(color.RGBA{255, 0, 0, 255})
		dc.DrawPoint(x, y, 5)
		dc.Fill()
	}

	return dc.Image()
}

func columnFree(grid *voxelmap.Grid, i, j int) bool {
	for k := 0; k < grid.Dim().K; k++ {
		if !grid.IsFree(voxelmap.Cell{I: i, J: j, K: k}) {
			return false
		}
	}
	return true
}
