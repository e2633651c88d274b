package analysis

import (
	"strings"

	"github.com/san-kum/lienard/internal/spacetime"
)

type Point struct{ X, Y float64 }

// Portrait is a set of points in a plane.
type Portrait struct {
	Points []Point
}

// Axis selects a spatial coordinate.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) of(v spacetime.Vector4) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return v.X
}

// SpacetimeDiagram plots a world line with one spatial axis horizontal and
// ct vertical. Samples before from are skipped.
func SpacetimeDiagram(samples []spacetime.Vector4, axis Axis, from float64) *Portrait {
	p := &Portrait{Points: make([]Point, 0, len(samples))}
	for _, s := range samples {
		if s.CT < from {
			continue
		}
		p.Points = append(p.Points, Point{X: axis.of(s), Y: s.CT})
	}
	return p
}

// Crossings returns the ct values at which a world line crosses the plane
// axis = threshold going upwards, interpolated between samples.
func Crossings(samples []spacetime.Vector4, axis Axis, threshold float64) []float64 {
	var out []float64
	for i := 1; i < len(samples); i++ {
		prev, curr := axis.of(samples[i-1]), axis.of(samples[i])
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			out = append(out, samples[i-1].CT+frac*(samples[i].CT-samples[i-1].CT))
		}
	}
	return out
}

// PortraitToASCII plots the points of a portrait, with axes where they
// cross the visible area.
func PortraitToASCII(portrait *Portrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
