// Package tui is a terminal editor for a table layout. The scene is
// rasterized into character cells, one cell per block of canvas pixels.
package tui

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/threecushion/backend/internal/game"
)

const (
	ballRune  = '●'
	pathRune  = '·'
	blankRune = ' '
)

// Cell is one character on the grid.
type Cell struct {
	Rune rune
	FG   tcell.Color
	BG   tcell.Color
}

// CellSurface implements render.Surface on a grid of terminal cells.
// Translucent fills are skipped since a cell cannot blend.
type CellSurface struct {
	cols, rows int
	sx, sy     float64
	cells      []Cell
}

// NewCellSurface maps the canvas onto cols x rows cells.
func NewCellSurface(cols, rows int) *CellSurface {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &CellSurface{
		cols:  cols,
		rows:  rows,
		sx:    game.CanvasWidth / float64(cols),
		sy:    game.CanvasHeight / float64(rows),
		cells: make([]Cell, cols*rows),
	}
}

func (s *CellSurface) Size() (int, int) {
	return s.cols, s.rows
}

// Cell returns the cell at column x, row y.
func (s *CellSurface) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return Cell{}
	}
	return s.cells[y*s.cols+x]
}

// CellAt returns the grid coordinates of canvas point p.
func (s *CellSurface) CellAt(p game.Vec2) (int, int) {
	x := int(math.Floor(p.X / s.sx))
	y := int(math.Floor(p.Y / s.sy))
	return clampInt(x, 0, s.cols-1), clampInt(y, 0, s.rows-1)
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (s *CellSurface) Clear(c color.RGBA) {
	bg := tcellColor(c)
	for i := range s.cells {
		s.cells[i] = Cell{Rune: blankRune, FG: tcell.ColorWhite, BG: bg}
	}
}

// FillRect paints every cell whose center lies inside the rectangle.
func (s *CellSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	if c.A != 0xFF {
		return
	}
	bg := tcellColor(c)
	for row := 0; row < s.rows; row++ {
		cy := (float64(row) + 0.5) * s.sy
		if cy < y || cy >= y+h {
			continue
		}
		for col := 0; col < s.cols; col++ {
			cx := (float64(col) + 0.5) * s.sx
			if cx < x || cx >= x+w {
				continue
			}
			s.cells[row*s.cols+col] = Cell{Rune: blankRune, FG: tcell.ColorWhite, BG: bg}
		}
	}
}

// FillPolygon marks the cell under the polygon's centroid. Diamonds are the
// only polygons drawn and each is smaller than a cell.
func (s *CellSurface) FillPolygon(points []game.Vec2, c color.RGBA) {
	if len(points) == 0 || c.A != 0xFF {
		return
	}
	var centroid game.Vec2
	for _, p := range points {
		centroid = centroid.Plus(p)
	}
	centroid = centroid.Times(1 / float64(len(points)))
	x, y := s.CellAt(centroid)
	cell := &s.cells[y*s.cols+x]
	cell.Rune = '◆'
	cell.FG = tcellColor(c)
}

// StrokePolyline walks each segment cell by cell.
func (s *CellSurface) StrokePolyline(points []game.Vec2, width float64, c color.RGBA) {
	fg := tcellColor(c)
	for i := 1; i < len(points); i++ {
		x0, y0 := s.CellAt(points[i-1])
		x1, y1 := s.CellAt(points[i])
		line(x0, y0, x1, y1, func(x, y int) {
			cell := &s.cells[y*s.cols+x]
			if cell.Rune == ballRune {
				return
			}
			cell.Rune = pathRune
			cell.FG = fg
		})
	}
}

// FillCircle draws a ball glyph in the cell holding its center.
func (s *CellSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	if c.A != 0xFF {
		return
	}
	x, y := s.CellAt(game.Vec2{X: cx, Y: cy})
	cell := &s.cells[y*s.cols+x]
	cell.Rune = ballRune
	cell.FG = tcellColor(c)
}

// Flush copies the grid onto screen starting at the top-left corner.
func (s *CellSurface) Flush(screen tcell.Screen) {
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			cell := s.cells[y*s.cols+x]
			style := tcell.StyleDefault.Foreground(cell.FG).Background(cell.BG)
			screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

// line is Bresenham's algorithm over integer cells.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
