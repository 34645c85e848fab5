package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/threecushion/backend/internal/game"
)

type op struct {
	kind   string
	points []game.Vec2
	x, y   float64
	c      color.RGBA
}

// recordingSurface captures every call so tests can assert on the draw list.
type recordingSurface struct {
	ops []op
}

func (r *recordingSurface) Clear(c color.RGBA) {
	r.ops = append(r.ops, op{kind: "clear", c: c})
}

func (r *recordingSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, c: c})
}

func (r *recordingSurface) FillPolygon(points []game.Vec2, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "polygon", points: points, c: c})
}

func (r *recordingSurface) StrokePolyline(points []game.Vec2, width float64, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "polyline", points: points, c: c})
}

func (r *recordingSurface) FillCircle(cx, cy, radius float64, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "circle", x: cx, y: cy, c: c})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func TestDrawSceneAtRest(t *testing.T) {
	s := &recordingSurface{}
	DrawScene(s, game.InitialLayout(), game.DefaultPolicy())

	if s.ops[0].kind != "clear" {
		t.Errorf("first op = %s, want clear", s.ops[0].kind)
	}
	if n := s.count("rect"); n != 3 {
		t.Errorf("rects = %d, want 3", n)
	}
	if n := s.count("polygon"); n != 28 {
		t.Errorf("diamonds = %d, want 28", n)
	}
	// Three balls, each with a shadow.
	if n := s.count("circle"); n != 6 {
		t.Errorf("circles = %d, want 6", n)
	}
	// Balls at rest have single-point trajectories, which draw nothing.
	if n := s.count("polyline"); n != 0 {
		t.Errorf("polylines = %d, want 0", n)
	}
}

func TestDrawSceneOffsetsTrajectoryByBorder(t *testing.T) {
	layout, err := game.InitialLayout().Apply(game.Edit{Ball: game.Red, Field: game.FieldVX, Value: 1}, game.DefaultMaxVelocity)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	s := &recordingSurface{}
	DrawScene(s, layout, game.Policy{SpeedScale: 200, MaxBounces: 5, MaxVelocity: 10})

	var lines []op
	for _, o := range s.ops {
		if o.kind == "polyline" {
			lines = append(lines, o)
		}
	}
	if len(lines) != 1 {
		t.Fatalf("polylines = %d, want 1", len(lines))
	}
	line := lines[0]
	if line.c != BallColor(game.Red) {
		t.Errorf("trajectory color = %v, want red", line.c)
	}
	want := []game.Vec2{{X: 640, Y: 240}, {X: 840, Y: 240}}
	if len(line.points) != len(want) {
		t.Fatalf("points = %v, want %v", line.points, want)
	}
	for i := range want {
		if line.points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, line.points[i], want[i])
		}
	}
}

func TestDrawBallCentersOnCanvas(t *testing.T) {
	s := &recordingSurface{}
	DrawBall(s, game.Ball{Color: game.White, X: 0, Y: 0})
	if s.ops[0].x != 40 || s.ops[0].y != 40 {
		t.Errorf("ball center = (%v,%v), want (40,40)", s.ops[0].x, s.ops[0].y)
	}
	if s.ops[1].x != 42 || s.ops[1].c != ShadowColor {
		t.Errorf("shadow op = %+v", s.ops[1])
	}
}

func TestRenderSVG(t *testing.T) {
	layout, _ := game.InitialLayout().Apply(game.Edit{Ball: game.White, Field: game.FieldVY, Value: 3}, game.DefaultMaxVelocity)
	doc := string(RenderSVG(layout, game.DefaultPolicy()))

	if !strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" width="880" height="480"`) {
		t.Errorf("unexpected header: %.80s", doc)
	}
	if !strings.HasSuffix(doc, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if strings.Count(doc, "<polyline") != 1 {
		t.Errorf("expected one trajectory polyline")
	}
	if !strings.Contains(doc, `fill="#8B4513"`) {
		t.Error("rail color missing")
	}
	if !strings.Contains(doc, `fill-opacity="0.10"`) {
		t.Error("shadow opacity missing")
	}
}

func TestHex(t *testing.T) {
	if got := Hex(ClothColor); got != "#264FD5" {
		t.Errorf("Hex = %s", got)
	}
}
