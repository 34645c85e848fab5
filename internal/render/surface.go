// Package render draws a table layout onto any drawing surface. The game
// package never depends on it; only presentation code does.
package render

import (
	"fmt"
	"image/color"

	"github.com/threecushion/backend/internal/game"
)

// Surface is the minimal set of drawing operations the scene needs. All
// coordinates are canvas coordinates (table-local plus the border inset).
type Surface interface {
	Clear(c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	FillPolygon(points []game.Vec2, c color.RGBA)
	StrokePolyline(points []game.Vec2, width float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
}

var (
	RailColor    = color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF}
	CushionColor = color.RGBA{R: 0x0A, G: 0x7B, B: 0xD1, A: 0xFF}
	ClothColor   = color.RGBA{R: 0x26, G: 0x4F, B: 0xD5, A: 0xFF}
	DiamondColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ShadowColor  = color.RGBA{R: 0, G: 0, B: 0, A: 0x1A} // 10% black
)

// BallColor maps a ball to its fill color.
func BallColor(c game.Color) color.RGBA {
	switch c {
	case game.White:
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	case game.Yellow:
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
	case game.Red:
		return color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	}
	return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
}

// Hex formats c as #RRGGBB, dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
