package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/render"
)

// 88x24 cells gives 10x20 canvas pixels per cell.
func drawnSurface(t *testing.T, layout game.Layout, policy game.Policy) *CellSurface {
	t.Helper()
	s := NewCellSurface(88, 24)
	render.DrawScene(s, layout, policy)
	return s
}

func TestCellSurfaceDrawsTable(t *testing.T) {
	s := drawnSurface(t, game.InitialLayout(), game.DefaultPolicy())

	if got := s.Cell(0, 0).BG; got != tcellColor(render.RailColor) {
		t.Errorf("corner background = %v, want rail", got)
	}
	if got := s.Cell(44, 12).BG; got != tcellColor(render.ClothColor) {
		t.Errorf("center background = %v, want cloth", got)
	}
	if got := s.Cell(14, 0).Rune; got != '◆' {
		t.Errorf("top rail diamond = %q", got)
	}

	balls := map[game.Color][2]int{
		game.White:  {24, 12},
		game.Yellow: {44, 12},
		game.Red:    {64, 12},
	}
	for c, pos := range balls {
		cell := s.Cell(pos[0], pos[1])
		if cell.Rune != ballRune || cell.FG != tcellColor(render.BallColor(c)) {
			t.Errorf("%s ball cell = %+v", c, cell)
		}
	}
}

func TestCellSurfaceDrawsTrajectory(t *testing.T) {
	layout, _ := game.InitialLayout().Apply(game.Edit{Ball: game.Red, Field: game.FieldVX, Value: 1}, game.DefaultMaxVelocity)
	s := drawnSurface(t, layout, game.Policy{SpeedScale: 200, MaxBounces: 5, MaxVelocity: 10})

	for col := 65; col <= 83; col++ {
		cell := s.Cell(col, 12)
		if cell.Rune != pathRune || cell.FG != tcellColor(render.BallColor(game.Red)) {
			t.Fatalf("cell %d on the red path = %+v", col, cell)
		}
	}
	// The ball glyph is not overwritten by its own path.
	if s.Cell(64, 12).Rune != ballRune {
		t.Error("path overwrote the red ball")
	}
	if s.Cell(70, 11).Rune == pathRune {
		t.Error("path leaked onto the row above")
	}
}

func TestLineIsContinuous(t *testing.T) {
	var cells [][2]int
	line(0, 0, 5, 2, func(x, y int) { cells = append(cells, [2]int{x, y}) })
	if cells[0] != [2]int{0, 0} || cells[len(cells)-1] != [2]int{5, 2} {
		t.Fatalf("endpoints = %v", cells)
	}
	for i := 1; i < len(cells); i++ {
		dx := absInt(cells[i][0] - cells[i-1][0])
		dy := absInt(cells[i][1] - cells[i-1][1])
		if dx > 1 || dy > 1 {
			t.Errorf("gap between %v and %v", cells[i-1], cells[i])
		}
	}
}

func TestEditorSelection(t *testing.T) {
	e := NewEditor(game.InitialLayout(), game.DefaultPolicy())

	if c, f := e.Selected(); c != game.White || f != game.FieldX {
		t.Fatalf("initial selection = %s/%s", c, f)
	}
	e.HandleKey(tcell.KeyTab, 0)
	e.HandleKey(tcell.KeyTab, 0)
	e.HandleKey(tcell.KeyTab, 0)
	if c, _ := e.Selected(); c != game.White {
		t.Errorf("tab should wrap to white, got %s", c)
	}
	e.HandleKey(tcell.KeyBacktab, 0)
	if c, _ := e.Selected(); c != game.Red {
		t.Errorf("backtab from white = %s", c)
	}
	e.HandleKey(tcell.KeyLeft, 0)
	if _, f := e.Selected(); f != game.FieldVY {
		t.Errorf("left from x = %s", f)
	}
	e.HandleKey(tcell.KeyRune, '2')
	if c, _ := e.Selected(); c != game.Yellow {
		t.Errorf("'2' selects %s", c)
	}
}

func TestEditorNudgesAndClamps(t *testing.T) {
	e := NewEditor(game.InitialLayout(), game.DefaultPolicy())

	if a := e.HandleKey(tcell.KeyUp, 0); a != ActionEdited {
		t.Errorf("up = %v, want ActionEdited", a)
	}
	if e.Value() != game.TableWidth/4+1 {
		t.Errorf("x after up = %v", e.Value())
	}

	e.HandleKey(tcell.KeyRight, 0)
	e.HandleKey(tcell.KeyRight, 0) // vx
	e.HandleKey(tcell.KeyRune, '+')
	e.HandleKey(tcell.KeyRune, '+')
	if e.Value() != 10 {
		t.Errorf("vx after two +10 = %v, want clamp at 10", e.Value())
	}
	if tr := e.Trajectory(); tr.Bounces == 0 {
		t.Error("moving ball should have a path")
	}
	if !strings.Contains(e.Status(), "vx") || !strings.Contains(e.Status(), "bounces") {
		t.Errorf("status = %q", e.Status())
	}

	e.HandleKey(tcell.KeyRune, 'r')
	if e.Value() != 0 {
		t.Errorf("vx after reset = %v", e.Value())
	}
}

func TestEditorQuitKeys(t *testing.T) {
	e := NewEditor(game.InitialLayout(), game.DefaultPolicy())
	if e.HandleKey(tcell.KeyRune, 'q') != ActionQuit {
		t.Error("q should quit")
	}
	if e.HandleKey(tcell.KeyEscape, 0) != ActionQuit {
		t.Error("Esc should quit")
	}
	if e.HandleKey(tcell.KeyRune, 'z') != ActionNone {
		t.Error("unbound key should do nothing")
	}
}

func TestAppDrawsStatusLine(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(88, 26)

	app := NewApp(screen, NewEditor(game.InitialLayout(), game.DefaultPolicy()), nil)
	if app.HandleEvent(tcell.NewEventResize(88, 26)) {
		t.Fatal("resize should not quit")
	}

	cells, w, _ := screen.GetContents()
	var status strings.Builder
	for x := 0; x < 5; x++ {
		status.WriteRune(cells[24*w+x].Runes[0])
	}
	if status.String() != "white" {
		t.Errorf("status line starts with %q", status.String())
	}
	if cells[12*w+24].Runes[0] != ballRune {
		t.Error("white ball missing from the screen")
	}
}
