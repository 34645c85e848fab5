package game

import "math"

// Project traces the straight-line path of a ball across a width x height
// rectangle, reflecting the velocity at each wall.
//
// The path length budget is the ball's speed times speedScale. The loop stops
// once the budget is spent or maxBounces segments have been produced; the last
// segment is not clipped, so the path may overshoot the budget by at most one
// segment. The start point is always the first entry.
func Project(b Ball, width, height, speedScale float64, maxBounces int) []Vec2 {
	x, y := b.X, b.Y
	vx, vy := b.VX, b.VY
	points := []Vec2{{X: x, Y: y}}

	for _, f := range []float64{x, y, vx, vy, width, height, speedScale} {
		if !isFinite(f) {
			return points
		}
	}

	speed := math.Hypot(vx, vy)
	if speed == 0 {
		return points
	}
	remaining := speed * speedScale

	for bounces := 0; remaining > 0 && bounces < maxBounces; bounces++ {
		tx := timeToWall(x, vx, width)
		ty := timeToWall(y, vy, height)
		t := math.Min(tx, ty)
		if math.IsInf(t, 1) {
			break
		}

		x += vx * t
		y += vy * t
		// Snap the binding axis onto its wall so rounding cannot leave the
		// ball a hair outside and make the next time-to-wall non-positive.
		if t == tx {
			x = wallCoordinate(vx, width)
		}
		if t == ty {
			y = wallCoordinate(vy, height)
		}
		points = append(points, Vec2{X: x, Y: y})

		remaining -= math.Hypot(vx, vy) * t

		if t == tx {
			vx = -vx
		}
		if t == ty {
			vy = -vy
		}
	}

	return points
}

// timeToWall returns how long a ball at pos moving at vel takes to reach the
// wall it is heading for on one axis. A stationary axis, or a wall that lies
// behind the ball (start point outside the rectangle), never binds.
func timeToWall(pos, vel, dim float64) float64 {
	var t float64
	switch {
	case vel > 0:
		t = (dim - pos) / vel
	case vel < 0:
		t = -pos / vel
	default:
		return math.Inf(1)
	}
	if t <= 0 {
		return math.Inf(1)
	}
	return t
}

func wallCoordinate(vel, dim float64) float64 {
	if vel > 0 {
		return dim
	}
	return 0
}

// PathLength sums the lengths of the segments through points.
func PathLength(points []Vec2) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].DistanceTo(points[i])
	}
	return total
}

// Trajectory is a projected path for one ball.
type Trajectory struct {
	Color   Color   `json:"color"`
	Points  []Vec2  `json:"points"`
	Length  float64 `json:"length"`
	Bounces int     `json:"bounces"`
}

// NewTrajectory wraps a projected path with its summary figures.
func NewTrajectory(c Color, points []Vec2) Trajectory {
	bounces := len(points) - 1
	if bounces < 0 {
		bounces = 0
	}
	return Trajectory{
		Color:   c,
		Points:  points,
		Length:  PathLength(points),
		Bounces: bounces,
	}
}
