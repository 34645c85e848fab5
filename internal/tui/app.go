package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/threecushion/backend/internal/render"
)

const helpLine = "Tab ball  ←/→ field  ↑/↓ ±1  +/- ±10  r reset  q quit"

// Player receives the bounce count of the edited ball after each change.
type Player interface {
	Play(bounces int)
}

// App runs the editor against a terminal screen.
type App struct {
	screen tcell.Screen
	editor *Editor
	cue    Player
}

func NewApp(screen tcell.Screen, editor *Editor, cue Player) *App {
	return &App{screen: screen, editor: editor, cue: cue}
}

func (a *App) Editor() *Editor {
	return a.editor
}

// Draw renders the scene and the status lines.
func (a *App) Draw() {
	w, h := a.screen.Size()
	a.screen.Clear()

	rows := h - 2
	if rows < 1 {
		rows = 1
	}
	surface := NewCellSurface(w, rows)
	render.DrawScene(surface, a.editor.Layout(), a.editor.Policy())
	surface.Flush(a.screen)

	c, _ := a.editor.Selected()
	status := tcell.StyleDefault.Foreground(tcellColor(render.BallColor(c))).Bold(true)
	drawText(a.screen, 0, h-2, w, a.editor.Status(), status)
	drawText(a.screen, 0, h-1, w, helpLine, tcell.StyleDefault.Foreground(tcell.ColorGray))
	a.screen.Show()
}

// HandleEvent processes one event and reports whether the app should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.Draw()
	case *tcell.EventKey:
		switch a.editor.HandleKey(ev.Key(), ev.Rune()) {
		case ActionQuit:
			return true
		case ActionEdited:
			if a.cue != nil {
				a.cue.Play(a.editor.Trajectory().Bounces)
			}
			a.Draw()
		case ActionRedraw:
			a.Draw()
		}
	}
	return false
}

// Run draws once and then processes events until the user quits.
func (a *App) Run() {
	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if a.HandleEvent(ev) {
			return
		}
	}
}

func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			return
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
