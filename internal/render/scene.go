package render

import (
	"image/color"

	"github.com/threecushion/backend/internal/game"
)

const trajectoryWidth = 1.0

var standardTable = game.NewStandardTable()

// DrawScene paints the table, its diamonds, then each ball followed by its
// projected trajectory.
func DrawScene(s Surface, layout game.Layout, policy game.Policy) {
	DrawTable(s)
	for _, b := range layout.Balls() {
		DrawBall(s, b)
		DrawTrajectory(s, policy.Project(b))
	}
}

// DrawTable paints the rail, cushion and cloth rectangles and the diamonds.
func DrawTable(s Surface) {
	t := standardTable
	s.Clear(RailColor)
	fillRect(s, t.Rail, RailColor)
	fillRect(s, t.Cushion, CushionColor)
	fillRect(s, t.Cloth, ClothColor)
	for _, d := range t.Diamonds {
		s.FillPolygon(game.DiamondOutline(d.Position), DiamondColor)
	}
}

func fillRect(s Surface, r game.Rect, c color.RGBA) {
	s.FillRect(r.X, r.Y, r.Width, r.Height, c)
}

// DrawBall paints a ball with a faint shadow offset down and to the right.
func DrawBall(s Surface, b game.Ball) {
	center := game.ToCanvas(b.Position())
	s.FillCircle(center.X, center.Y, game.BallRadius, BallColor(b.Color))
	s.FillCircle(center.X+2, center.Y+2, game.BallRadius-1, ShadowColor)
}

// DrawTrajectory strokes the projected path in the ball's color. A path
// with a single point has nothing to draw.
func DrawTrajectory(s Surface, tr game.Trajectory) {
	if len(tr.Points) < 2 {
		return
	}
	pts := make([]game.Vec2, len(tr.Points))
	for i, p := range tr.Points {
		pts[i] = game.ToCanvas(p)
	}
	s.StrokePolyline(pts, trajectoryWidth, BallColor(tr.Color))
}
