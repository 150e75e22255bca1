package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// viewport maps world coordinates onto canvas sub-pixels with one uniform
// scale, letterboxing the world inside the canvas.
type viewport struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func newViewport(worldW, worldH float64, cols, rows int) viewport {
	pw, ph := float64(cols*2), float64(rows*4)
	if worldW <= 0 || worldH <= 0 || pw <= 0 || ph <= 0 {
		return viewport{scale: 1}
	}
	scale := math.Min(pw/worldW, ph/worldH)
	return viewport{
		scale:   scale,
		offsetX: (pw - worldW*scale) / 2,
		offsetY: (ph - worldH*scale) / 2,
	}
}

func (v viewport) toCanvas(p r2.Vec) (int, int) {
	return int(math.Round(p.X*v.scale + v.offsetX)), int(math.Round(p.Y*v.scale + v.offsetY))
}

func (v viewport) length(l float64) int {
	return int(math.Round(l * v.scale))
}

func (v viewport) toWorld(px, py float64) r2.Vec {
	return r2.Vec{X: (px - v.offsetX) / v.scale, Y: (py - v.offsetY) / v.scale}
}

// cellToWorld returns the world point under the centre of a canvas cell.
func (v viewport) cellToWorld(col, row int) r2.Vec {
	return v.toWorld(float64(col*2)+1, float64(row*4)+2)
}
