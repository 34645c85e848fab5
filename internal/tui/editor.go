package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/threecushion/backend/internal/game"
)

// Action tells the app what a key press did.
type Action int

const (
	ActionNone Action = iota
	ActionRedraw
	ActionEdited
	ActionQuit
)

const (
	smallStep = 1.0
	largeStep = 10.0
)

// Editor holds the layout being edited and the current selection. It has
// no screen so it can be driven directly.
type Editor struct {
	layout game.Layout
	policy game.Policy
	ball   int
	field  int
	err    error
}

func NewEditor(layout game.Layout, policy game.Policy) *Editor {
	return &Editor{layout: layout.Clamped(policy.MaxVelocity), policy: policy}
}

func (e *Editor) Layout() game.Layout {
	return e.layout
}

func (e *Editor) Policy() game.Policy {
	return e.policy
}

// Selected returns the ball and field the arrows act on.
func (e *Editor) Selected() (game.Color, game.Field) {
	return game.Colors[e.ball], game.Fields[e.field]
}

// Value returns the current value of the selected field.
func (e *Editor) Value() float64 {
	c, f := e.Selected()
	b, _ := e.layout.Ball(c)
	v, _ := b.Get(f)
	return v
}

// Trajectory returns the projected path of the selected ball.
func (e *Editor) Trajectory() game.Trajectory {
	c, _ := e.Selected()
	b, _ := e.layout.Ball(c)
	return e.policy.Project(b)
}

// HandleKey applies one key press.
func (e *Editor) HandleKey(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyTab:
		e.ball = (e.ball + 1) % len(game.Colors)
		return ActionRedraw
	case tcell.KeyBacktab:
		e.ball = (e.ball + len(game.Colors) - 1) % len(game.Colors)
		return ActionRedraw
	case tcell.KeyRight:
		e.field = (e.field + 1) % len(game.Fields)
		return ActionRedraw
	case tcell.KeyLeft:
		e.field = (e.field + len(game.Fields) - 1) % len(game.Fields)
		return ActionRedraw
	case tcell.KeyUp:
		return e.nudge(smallStep)
	case tcell.KeyDown:
		return e.nudge(-smallStep)
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return ActionQuit
		case '+', '=':
			return e.nudge(largeStep)
		case '-', '_':
			return e.nudge(-largeStep)
		case 'r', 'R':
			e.layout = game.InitialLayout()
			e.err = nil
			return ActionEdited
		case '1', '2', '3':
			e.ball = int(r - '1')
			return ActionRedraw
		}
	}
	return ActionNone
}

func (e *Editor) nudge(delta float64) Action {
	c, f := e.Selected()
	next, err := e.layout.Apply(game.Edit{Ball: c, Field: f, Value: e.Value() + delta}, e.policy.MaxVelocity)
	if err != nil {
		e.err = err
		return ActionRedraw
	}
	e.layout = next
	e.err = nil
	return ActionEdited
}

// Status is the one-line summary shown under the table.
func (e *Editor) Status() string {
	c, f := e.Selected()
	tr := e.Trajectory()
	s := fmt.Sprintf("%-6s %-2s = %7.1f | bounces %d | length %.0f", c, f, e.Value(), tr.Bounces, tr.Length)
	if e.err != nil {
		s += " | " + e.err.Error()
	}
	return s
}
