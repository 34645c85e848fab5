package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/threecushion/backend/internal/game"
)

// SVGSurface records drawing operations as SVG elements.
type SVGSurface struct {
	width, height float64
	body          bytes.Buffer
}

func NewSVGSurface(width, height float64) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

func (s *SVGSurface) Clear(c color.RGBA) {
	s.body.Reset()
	s.FillRect(0, 0, s.width, s.height, c)
}

func (s *SVGSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(x), num(y), num(w), num(h), paint("fill", c))
}

func (s *SVGSurface) FillPolygon(points []game.Vec2, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	fmt.Fprintf(&s.body, `<polygon points="%s"%s/>`+"\n", pointList(points), paint("fill", c))
}

func (s *SVGSurface) StrokePolyline(points []game.Vec2, width float64, c color.RGBA) {
	if len(points) < 2 {
		return
	}
	fmt.Fprintf(&s.body, `<polyline points="%s" fill="none" stroke-width="%s"%s/>`+"\n",
		pointList(points), num(width), paint("stroke", c))
}

func (s *SVGSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%s" cy="%s" r="%s"%s/>`+"\n", num(cx), num(cy), num(r), paint("fill", c))
}

// WriteTo writes the complete SVG document.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	var doc bytes.Buffer
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	doc.Write(s.body.Bytes())
	doc.WriteString("</svg>\n")
	return doc.WriteTo(w)
}

func (s *SVGSurface) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

// RenderSVG draws the full scene for layout and returns the SVG document.
func RenderSVG(layout game.Layout, policy game.Policy) []byte {
	s := NewSVGSurface(game.CanvasWidth, game.CanvasHeight)
	DrawScene(s, layout, policy)
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.Bytes()
}

func paint(attr string, c color.RGBA) string {
	out := fmt.Sprintf(` %s="%s"`, attr, Hex(c))
	if c.A != 0xFF {
		out += fmt.Sprintf(` %s-opacity="%s"`, attr, strconv.FormatFloat(float64(c.A)/255, 'f', 2, 64))
	}
	return out
}

func pointList(points []game.Vec2) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
