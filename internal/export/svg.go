package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/NotAF0e/Gravitonic/internal/physics"
)

// SnapshotSVG draws each body as a filled circle in its own colour. The
// viewBox covers the arena, or the bodies' extent when bounds is nil, and is
// scaled to width x height.
func SnapshotSVG(bodies []physics.Body, bounds physics.Boundary, width, height int) string {
	minX, minY, maxX, maxY := extent(bodies, bounds)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%.1f %.1f %.1f %.1f" preserveAspectRatio="xMidYMid meet">
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#0a0a0a"/>
`, width, height, minX, minY, maxX-minX, maxY-minY, minX, minY, maxX-minX, maxY-minY))

	switch b := bounds.(type) {
	case physics.Circle:
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#000000" stroke="#444466" stroke-width="2"/>
`, b.Center.X, b.Center.Y, b.Radius))
	case physics.Rect:
		sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%.1f" height="%.1f" fill="none" stroke="#444466" stroke-width="2"/>
`, b.Width, b.Height))
	}

	for _, b := range bodies {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="#%02x%02x%02x"/>
`, b.Current.X, b.Current.Y, b.Radius, b.Color.R, b.Color.G, b.Color.B))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func extent(bodies []physics.Body, bounds physics.Boundary) (minX, minY, maxX, maxY float64) {
	switch b := bounds.(type) {
	case physics.Circle:
		return b.Center.X - b.Radius, b.Center.Y - b.Radius, b.Center.X + b.Radius, b.Center.Y + b.Radius
	case physics.Rect:
		return 0, 0, b.Width, b.Height
	}

	if len(bodies) == 0 {
		return 0, 0, 1, 1
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, b := range bodies {
		minX = math.Min(minX, b.Current.X-b.Radius)
		minY = math.Min(minY, b.Current.Y-b.Radius)
		maxX = math.Max(maxX, b.Current.X+b.Radius)
		maxY = math.Max(maxY, b.Current.Y+b.Radius)
	}

	pad := 0.1 * math.Max(maxX-minX, maxY-minY)
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}

// SeriesSVG plots a per-frame series (body count, energy) as a polyline.
func SeriesSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
