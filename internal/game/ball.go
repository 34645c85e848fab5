package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownBall  = errors.New("unknown ball")
	ErrUnknownField = errors.New("unknown field")
)

// Color identifies a ball. Each color appears exactly once on the table.
type Color string

const (
	White  Color = "white"
	Yellow Color = "yellow"
	Red    Color = "red"
)

// Colors lists every ball in drawing order.
var Colors = []Color{White, Yellow, Red}

// ParseColor resolves a case-insensitive color name.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Colors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBall, s)
}

// Field names an editable ball attribute.
type Field string

const (
	FieldX  Field = "x"
	FieldY  Field = "y"
	FieldVX Field = "vx"
	FieldVY Field = "vy"
)

// Fields lists the editable attributes in form order.
var Fields = []Field{FieldX, FieldY, FieldVX, FieldVY}

func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Ball is one ball's editable state. Position is relative to the cloth's
// top-left corner; it is not required to lie on the cloth.
type Ball struct {
	Color Color   `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
}

func (b Ball) Position() Vec2 {
	return Vec2{X: b.X, Y: b.Y}
}

func (b Ball) Velocity() Vec2 {
	return Vec2{X: b.VX, Y: b.VY}
}

// Get returns the value of a single field.
func (b Ball) Get(f Field) (float64, error) {
	switch f {
	case FieldX:
		return b.X, nil
	case FieldY:
		return b.Y, nil
	case FieldVX:
		return b.VX, nil
	case FieldVY:
		return b.VY, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
}

// With returns a copy of b with one field replaced. Velocity components are
// clamped to [-maxVelocity, maxVelocity].
func (b Ball) With(f Field, value, maxVelocity float64) (Ball, error) {
	switch f {
	case FieldX:
		b.X = value
	case FieldY:
		b.Y = value
	case FieldVX:
		b.VX = ClampVelocity(value, maxVelocity)
	case FieldVY:
		b.VY = ClampVelocity(value, maxVelocity)
	default:
		return b, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return b, nil
}

// ClampVelocity limits a velocity component to [-maxVelocity, +maxVelocity].
// Out-of-range input is clamped, never rejected. NaN becomes 0.
func ClampVelocity(v, maxVelocity float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	limit := math.Abs(maxVelocity)
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
