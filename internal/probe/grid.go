// Package probe samples the electromagnetic field on grids of fixed
// measurement points, as the observer sees them: each point is taken where
// its world line crosses the observer's past light cone.
package probe

import (
	"fmt"

	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/spacetime"
)

// Grid is a named set of measurement points at rest in the world frame.
type Grid struct {
	Name   string
	Points []spacetime.Vector3
}

// Surface is the floor z=0 for y >= -5 plus a back wall at y=-5.
func Surface(n int) Grid {
	g := Grid{Name: "2d"}
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			if y < -5 {
				continue
			}
			g.Points = append(g.Points, spacetime.Vec3(float64(x), float64(y), 0))
		}
	}
	for x := -n; x <= n; x++ {
		for z := 1; z <= n; z++ {
			g.Points = append(g.Points, spacetime.Vec3(float64(x), -5, float64(z)))
		}
	}
	return g
}

// Bulk is the cube [-n, n]^3 at unit spacing.
func Bulk(n int) Grid {
	side := 2*n + 1
	g := Grid{Name: "3d", Points: make([]spacetime.Vector3, 0, side*side*side)}
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			for z := -n; z <= n; z++ {
				g.Points = append(g.Points, spacetime.Vec3(float64(x), float64(y), float64(z)))
			}
		}
	}
	return g
}

// Line places n evenly spaced points from a to b inclusive.
func Line(a, b spacetime.Vector3, n int) Grid {
	if n < 2 {
		return Grid{Name: "line", Points: []spacetime.Vector3{a}}
	}
	g := Grid{Name: "line", Points: make([]spacetime.Vector3, 0, n)}
	step := b.Sub(a).Div(float64(n - 1))
	for i := 0; i < n; i++ {
		g.Points = append(g.Points, a.Add(step.Scale(float64(i))))
	}
	return g
}

const (
	DefaultSurfaceSize = 50
	DefaultBulkSize    = 12
)

// ParseGrid builds a grid by name. size <= 0 selects the default extent.
func ParseGrid(name string, size int) (Grid, error) {
	switch name {
	case "2d", "surface":
		if size <= 0 {
			size = DefaultSurfaceSize
		}
		return Surface(size), nil
	case "3d", "bulk":
		if size <= 0 {
			size = DefaultBulkSize
		}
		return Bulk(size), nil
	}
	return Grid{}, fmt.Errorf("%w: unknown grid %q", dynamo.ErrParameterBounds, name)
}
