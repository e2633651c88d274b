package viz

import (
	"math"
	"sort"

	"github.com/san-kum/lienard/internal/spacetime"
)

const (
	cameraNear = 0.1
	cameraFar  = 1000
)

// Camera orbits the observer at a fixed distance.
type Camera struct {
	Yaw, Pitch float64
	Distance   float64
	FOV        float64
}

func NewCamera() *Camera {
	return &Camera{Pitch: -0.5, Distance: 40, FOV: math.Pi / 3}
}

func (c *Camera) Rotate(yaw, pitch float64) {
	c.Yaw += yaw
	c.Pitch = math.Max(-1.5, math.Min(1.5, c.Pitch+pitch))
}

func (c *Camera) ZoomIn()  { c.Distance = math.Max(5, c.Distance/1.2) }
func (c *Camera) ZoomOut() { c.Distance = math.Min(500, c.Distance*1.2) }

func rotationX(a float64) spacetime.Matrix {
	s, co := math.Sin(a), math.Cos(a)
	return spacetime.NewMatrix(
		[4]float64{1, 0, 0, 0},
		[4]float64{0, co, -s, 0},
		[4]float64{0, s, co, 0},
		[4]float64{0, 0, 0, 1},
	)
}

func rotationY(a float64) spacetime.Matrix {
	s, co := math.Sin(a), math.Cos(a)
	return spacetime.NewMatrix(
		[4]float64{co, 0, s, 0},
		[4]float64{0, 1, 0, 0},
		[4]float64{-s, 0, co, 0},
		[4]float64{0, 0, 0, 1},
	)
}

// View is the world-to-eye transform.
func (c *Camera) View() spacetime.Matrix {
	return spacetime.Translation(spacetime.Vec3(0, 0, -c.Distance)).
		Mul(rotationX(c.Pitch)).
		Mul(rotationY(c.Yaw))
}

// Project maps p to canvas dots. It returns the eye-space depth and
// whether p lies in front of the camera.
func (c *Camera) Project(cv *Canvas, p spacetime.Vector3) (int, int, float64, bool) {
	eye := c.View().MulPoint(p)
	if eye.Z > -cameraNear {
		return 0, 0, 0, false
	}
	pw, ph := float64(cv.PixelWidth()), float64(cv.PixelHeight())
	ndc := spacetime.Perspective(c.FOV, pw/ph, cameraNear, cameraFar).Project(eye)
	x := (ndc.X + 1) / 2 * pw
	y := (1 - ndc.Y) / 2 * ph
	return int(math.Round(x)), int(math.Round(y)), -eye.Z, true
}

type Edge struct {
	Start, End spacetime.Vector3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                      { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e spacetime.Vector3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p spacetime.Vector3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                         { w.Edges = w.Edges[:0] }
func (w *Wireframe) Len() int                       { return len(w.Edges) }
func (w *Wireframe) Append(o *Wireframe)            { w.Edges = append(w.Edges, o.Edges...) }

func (w *Wireframe) Translate(d spacetime.Vector3) *Wireframe {
	out := &Wireframe{Edges: make([]Edge, len(w.Edges))}
	for i, e := range w.Edges {
		out.Edges[i] = Edge{e.Start.Add(d), e.End.Add(d)}
	}
	return out
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near. Edges with an endpoint behind
// the camera are skipped.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, ok1 := cam.Project(c, e.Start)
		x2, y2, d2, ok2 := cam.Project(c, e.End)
		if ok1 && ok2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

func CreateAxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), spacetime.Vector3{}
	w.AddEdge(o, spacetime.Vec3(l, 0, 0))
	w.AddEdge(o, spacetime.Vec3(0, l, 0))
	w.AddEdge(o, spacetime.Vec3(0, 0, l))
	return w
}

// CreateMarkerWireframe is a small three-axis cross centred on the origin.
func CreateMarkerWireframe(size float64) *Wireframe {
	w, s := NewWireframe(), size/2
	w.AddEdge(spacetime.Vec3(-s, 0, 0), spacetime.Vec3(s, 0, 0))
	w.AddEdge(spacetime.Vec3(0, -s, 0), spacetime.Vec3(0, s, 0))
	w.AddEdge(spacetime.Vec3(0, 0, -s), spacetime.Vec3(0, 0, s))
	return w
}
