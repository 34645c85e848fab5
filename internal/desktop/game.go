// Package desktop shows a table layout in a window. Number keys pick a
// ball and letter keys open a dialog to type a new value.
package desktop

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ncruces/zenity"
	"github.com/threecushion/backend/internal/game"
	"github.com/threecushion/backend/internal/render"
)

const statusHeight = 40

// Prompter asks the user for a value. ok is false when the user cancels.
type Prompter interface {
	Prompt(title, text, current string) (value string, ok bool, err error)
}

// ZenityPrompter opens a native entry dialog.
type ZenityPrompter struct{}

func (ZenityPrompter) Prompt(title, text, current string) (string, bool, error) {
	v, err := zenity.Entry(text, zenity.Title(title), zenity.EntryText(current))
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Player receives the bounce count of the edited ball after each change.
type Player interface {
	Play(bounces int)
}

var fieldKeys = map[ebiten.Key]game.Field{
	ebiten.KeyX: game.FieldX,
	ebiten.KeyY: game.FieldY,
	ebiten.KeyV: game.FieldVX,
	ebiten.KeyW: game.FieldVY,
}

var ballKeys = map[ebiten.Key]game.Color{
	ebiten.Key1: game.White,
	ebiten.Key2: game.Yellow,
	ebiten.Key3: game.Red,
}

// Game implements ebiten.Game.
type Game struct {
	layout   game.Layout
	policy   game.Policy
	selected game.Color
	prompter Prompter
	cue      Player
	lastErr  error

	// input edge detection
	prevKey map[ebiten.Key]bool
}

func NewGame(layout game.Layout, policy game.Policy, prompter Prompter, cue Player) *Game {
	return &Game{
		layout:   layout.Clamped(policy.MaxVelocity),
		policy:   policy,
		selected: game.White,
		prompter: prompter,
		cue:      cue,
		prevKey:  map[ebiten.Key]bool{},
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(game.CanvasWidth), int(game.CanvasHeight) + statusHeight
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for k, c := range ballKeys {
		if justPressed(k) {
			g.Select(c)
		}
	}
	for k, f := range fieldKeys {
		if justPressed(k) {
			g.lastErr = g.PromptField(f)
		}
	}
	if justPressed(ebiten.KeyR) {
		g.layout = game.InitialLayout()
		g.played()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	render.DrawScene(NewImageSurface(screen), g.layout, g.policy)
	ebitenutil.DebugPrintAt(screen, g.Status(), 8, int(game.CanvasHeight)+4)
	ebitenutil.DebugPrintAt(screen, "1/2/3 ball  X/Y/V/W edit x/y/vx/vy  R reset  Q quit", 8, int(game.CanvasHeight)+20)
}

func (g *Game) Select(c game.Color) {
	g.selected = c
}

func (g *Game) Selected() game.Color {
	return g.selected
}

func (g *Game) Current() game.Layout {
	return g.layout
}

// PromptField asks for a new value of field f on the selected ball.
func (g *Game) PromptField(f game.Field) error {
	b, _ := g.layout.Ball(g.selected)
	cur, _ := b.Get(f)
	input, ok, err := g.prompter.Prompt(
		"Edit "+string(g.selected)+" ball",
		fmt.Sprintf("New %s for the %s ball:", f, g.selected),
		strconv.FormatFloat(cur, 'f', -1, 64),
	)
	if err != nil || !ok {
		return err
	}
	return g.SetField(f, input)
}

// SetField parses input and applies it to the selected ball.
func (g *Game) SetField(f game.Field, input string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%q is not a number", input)
	}
	next, err := g.layout.Apply(game.Edit{Ball: g.selected, Field: f, Value: v}, g.policy.MaxVelocity)
	if err != nil {
		return err
	}
	g.layout = next
	g.played()
	return nil
}

func (g *Game) played() {
	if g.cue == nil {
		return
	}
	b, _ := g.layout.Ball(g.selected)
	g.cue.Play(g.policy.Project(b).Bounces)
}

func (g *Game) Status() string {
	b, _ := g.layout.Ball(g.selected)
	tr := g.policy.Project(b)
	s := fmt.Sprintf("%s  x=%.1f y=%.1f vx=%.1f vy=%.1f  bounces=%d length=%.0f", g.selected, b.X, b.Y, b.VX, b.VY, tr.Bounces, tr.Length)
	if g.lastErr != nil {
		s += "  error: " + g.lastErr.Error()
	}
	return s
}
