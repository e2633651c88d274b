package export

import (
	"strings"
	"testing"

	"github.com/san-kum/lienard/internal/analysis"
	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 10)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `cx="5.0" cy="5.0"`) || !strings.Contains(svg, `cx="35.0" cy="35.0"`) {
		t.Errorf("unexpected dot positions:\n%s", svg)
	}
	if !strings.Contains(svg, `width="40" height="40"`) {
		t.Error("unexpected document size")
	}
}

func TestFieldMapSVG(t *testing.T) {
	pic := viz.Picture{
		Charges: []viz.Marker{
			{Pos: spacetime.Vec3(0, 0, -20), Q: 1},
			{Pos: spacetime.Vec3(5, 0, -20), Q: -1},
		},
		Arrows: []viz.FieldArrow{
			{Base: spacetime.Vec3(0, 5, 0), Dir: spacetime.Vec3(0, 1, 0), Length: 1},
		},
	}
	svg := FieldMapSVG(pic, viz.Viewport{Scale: 10}, 200, 100)

	if !strings.Contains(svg, `<circle cx="100.0" cy="50.0" r="5.0" fill="#ff4444"/>`) {
		t.Errorf("expected a filled positive charge at the center:\n%s", svg)
	}
	if !strings.Contains(svg, `cx="150.0" cy="50.0" r="5.0" fill="none"`) {
		t.Error("expected a hollow negative charge")
	}
	if !strings.Contains(svg, `<line x1="100.0" y1="0.0" x2="100.0" y2="-10.0"/>`) {
		t.Errorf("unexpected arrow:\n%s", svg)
	}
}

func TestPortraitsToSVG(t *testing.T) {
	if PortraitsToSVG(nil, 100, 100) != "" {
		t.Error("no portraits should give empty output")
	}

	line := []spacetime.Vector4{
		spacetime.Vec4(0, 0, 0, 0),
		spacetime.Vec4(1, 0, 0, 1),
		spacetime.Vec4(2, 0, 0, 2),
	}
	still := []spacetime.Vector4{
		spacetime.Vec4(-1, 0, 0, 0),
		spacetime.Vec4(-1, 0, 0, 2),
	}
	svg := PortraitsToSVG([]*analysis.Portrait{
		analysis.SpacetimeDiagram(line, analysis.AxisX, 0),
		analysis.SpacetimeDiagram(still, analysis.AxisX, 0),
	}, 120, 120)

	if n := strings.Count(svg, "<path"); n != 2 {
		t.Errorf("expected 2 paths, got %d", n)
	}
	if !strings.Contains(svg, lineColors[0]) || !strings.Contains(svg, lineColors[1]) {
		t.Error("expected one color per world line")
	}
}
