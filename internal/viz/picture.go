package viz

import (
	"github.com/san-kum/lienard/internal/probe"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/spacetime"
)

// MaxArrow caps drawn arrow length in world units.
const MaxArrow = 3.0

// Marker is a charge as the observer sees it: its retarded position in the
// observer's rest frame.
type Marker struct {
	Pos spacetime.Vector3
	Q   float64
}

// FieldArrow points along E at a probe, in the observer's rest frame.
type FieldArrow struct {
	Base, Dir spacetime.Vector3
	Length    float64
}

func (a FieldArrow) Tip() spacetime.Vector3 { return a.Base.Add(a.Dir.Scale(a.Length)) }

// Picture is everything the live view draws for one frame.
type Picture struct {
	Charges []Marker
	Arrows  []FieldArrow
}

// Capture samples the simulator's current frame.
func Capture(s *sim.Simulator, grid probe.Grid, arrow probe.Arrow) Picture {
	viewer := s.Viewer()
	boost := viewer.Boost()
	origin := viewer.Position()

	var pic Picture
	for _, src := range s.Sources() {
		rel := boost.MulVec4(src.Position.Sub(origin))
		pic.Charges = append(pic.Charges, Marker{Pos: rel.Spatial(), Q: src.Q})
	}
	if len(grid.Points) == 0 {
		return pic
	}
	for _, sm := range s.Sample(grid) {
		if !sm.Visible() || sm.E.Magnitude2() < probe.MinVisible {
			continue
		}
		pic.Arrows = append(pic.Arrows, FieldArrow{
			Base:   sm.Relative.Spatial(),
			Dir:    sm.E.Normalized(),
			Length: min(arrow.Length(sm.E), MaxArrow),
		})
	}
	return pic
}

// DrawSlice draws the picture from above, dropping z.
func DrawSlice(cv *Canvas, vp Viewport, pic Picture) {
	for _, a := range pic.Arrows {
		x0, y0 := vp.ToPixel(cv, a.Base)
		x1, y1 := vp.ToPixel(cv, a.Tip())
		cv.DrawLine(x0, y0, x1, y1)
	}
	for _, ch := range pic.Charges {
		x, y := vp.ToPixel(cv, ch.Pos)
		if ch.Q < 0 {
			cv.Ring(x, y, 2)
		} else {
			cv.Disc(x, y, 2)
		}
	}
}

// DrawPerspective draws the picture through an orbiting camera.
func DrawPerspective(cv *Canvas, cam *Camera, pic Picture) {
	w := CreateAxesWireframe(2)
	for _, a := range pic.Arrows {
		w.AddEdge(a.Base, a.Tip())
	}
	marker := CreateMarkerWireframe(1)
	for _, ch := range pic.Charges {
		w.Append(marker.Translate(ch.Pos))
	}
	Render3D(cv, w, cam)
}
