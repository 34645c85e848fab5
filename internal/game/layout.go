package game

import (
	"encoding/json"
	"fmt"
)

// Layout maps each ball color to its state. A Layout is never mutated after
// construction: every edit returns a new Layout with one entry replaced.
type Layout struct {
	balls map[Color]Ball
}

// InitialLayout places the three balls on the center line at a quarter, half
// and three quarters of the table length, all at rest.
func InitialLayout() Layout {
	return Layout{balls: map[Color]Ball{
		White:  {Color: White, X: TableWidth / 4, Y: TableHeight / 2},
		Yellow: {Color: Yellow, X: TableWidth / 2, Y: TableHeight / 2},
		Red:    {Color: Red, X: 3 * TableWidth / 4, Y: TableHeight / 2},
	}}
}

// Ball returns the state of one ball.
func (l Layout) Ball(c Color) (Ball, bool) {
	b, ok := l.balls[c]
	return b, ok
}

// Balls returns every ball in drawing order.
func (l Layout) Balls() []Ball {
	out := make([]Ball, 0, len(Colors))
	for _, c := range Colors {
		if b, ok := l.balls[c]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Replace returns a copy of l with b substituted for the ball of the same color.
func (l Layout) Replace(b Ball) (Layout, error) {
	if _, ok := l.balls[b.Color]; !ok {
		return l, fmt.Errorf("%w: %q", ErrUnknownBall, string(b.Color))
	}
	next := make(map[Color]Ball, len(l.balls))
	for c, existing := range l.balls {
		next[c] = existing
	}
	next[b.Color] = b
	return Layout{balls: next}, nil
}

// Edit sets one field of one ball.
type Edit struct {
	Ball  Color   `json:"ball"`
	Field Field   `json:"field"`
	Value float64 `json:"value"`
}

// Apply returns a new layout with the edit applied. Velocity edits are
// clamped to maxVelocity. l itself is left unchanged.
func (l Layout) Apply(e Edit, maxVelocity float64) (Layout, error) {
	b, ok := l.balls[e.Ball]
	if !ok {
		return l, fmt.Errorf("%w: %q", ErrUnknownBall, string(e.Ball))
	}
	updated, err := b.With(e.Field, e.Value, maxVelocity)
	if err != nil {
		return l, err
	}
	return l.Replace(updated)
}

// Clamped returns a copy of l with every velocity component clamped.
func (l Layout) Clamped(maxVelocity float64) Layout {
	next := make(map[Color]Ball, len(l.balls))
	for c, b := range l.balls {
		b.VX = ClampVelocity(b.VX, maxVelocity)
		b.VY = ClampVelocity(b.VY, maxVelocity)
		next[c] = b
	}
	return Layout{balls: next}
}

// Trajectories projects every ball under p, in drawing order.
func (l Layout) Trajectories(p Policy) []Trajectory {
	balls := l.Balls()
	out := make([]Trajectory, 0, len(balls))
	for _, b := range balls {
		out = append(out, p.Project(b))
	}
	return out
}

// MarshalJSON encodes the layout as an ordered array of balls.
func (l Layout) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Balls())
}

// UnmarshalJSON decodes an array of balls on top of InitialLayout, so a
// partial array leaves the missing balls at their starting spots.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var balls []Ball
	if err := json.Unmarshal(data, &balls); err != nil {
		return err
	}
	next := InitialLayout()
	for _, b := range balls {
		c, err := ParseColor(string(b.Color))
		if err != nil {
			return err
		}
		b.Color = c
		next, err = next.Replace(b)
		if err != nil {
			return err
		}
	}
	*l = next
	return nil
}
