package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lienard/internal/analysis"
	"github.com/san-kum/lienard/internal/viz"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`

var lineColors = []string{"#ff00ff", "#00ffff", "#ffff00", "#00ff88", "#ff8800", "#8888ff"}

// CanvasToSVG draws every set braille dot as a circle, scale pixels apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	w := int(float64(canvas.PixelWidth()) * scale)
	h := int(float64(canvas.PixelHeight()) * scale)

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, w, h, w, h)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	r := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FieldMapSVG draws a captured picture from above: E arrows in yellow,
// positive charges filled red, negative charges hollow blue.
func FieldMapSVG(pic viz.Picture, vp viz.Viewport, width, height int) string {
	toPx := func(x, y float64) (float64, float64) {
		return (x-vp.Center.X)*vp.Scale + float64(width)/2, -(y-vp.Center.Y)*vp.Scale + float64(height)/2
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height)

	sb.WriteString(`<g stroke="#ffd700" stroke-width="1">` + "\n")
	for _, a := range pic.Arrows {
		x0, y0 := toPx(a.Base.X, a.Base.Y)
		tip := a.Tip()
		x1, y1 := toPx(tip.X, tip.Y)
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x0, y0, x1, y1)
	}
	sb.WriteString("</g>\n")

	r := max(2, vp.Scale*0.5)
	for _, ch := range pic.Charges {
		x, y := toPx(ch.Pos.X, ch.Pos.Y)
		if ch.Q < 0 {
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"#4488ff\" stroke-width=\"2\"/>\n", x, y, r)
		} else {
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"#ff4444\"/>\n", x, y, r)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// PortraitsToSVG draws one path per portrait on shared, padded bounds. It is
// used for spacetime diagrams of several world lines.
func PortraitsToSVG(portraits []*analysis.Portrait, width, height int) string {
	var first *analysis.Point
	for _, p := range portraits {
		if p != nil && len(p.Points) > 0 {
			first = &p.Points[0]
			break
		}
	}
	if first == nil {
		return ""
	}

	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, p := range portraits {
		if p == nil {
			continue
		}
		for _, pt := range p.Points {
			minX, maxX = min(minX, pt.X), max(maxX, pt.X)
			minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
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
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, width, height, width, height)

	for i, p := range portraits {
		if p == nil || len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, lineColors[i%len(lineColors)])
		for j, pt := range p.Points {
			x := (pt.X - minX) / rangeX * float64(width)
			y := float64(height) - (pt.Y-minY)/rangeY*float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
