package game

// Table geometry for the three-cushion table, in table-local units.
// These MUST stay in sync with the frontend canvas constants.
const (
	TableWidth   = 800.0
	TableHeight  = 400.0
	BorderWidth  = 40.0 // rail thickness, also the drawing inset
	CushionWidth = 10.0
	BallDiameter = 17.0
	BallRadius   = BallDiameter / 2
	DiamondSize  = 8.0

	CanvasWidth  = TableWidth + 2*BorderWidth
	CanvasHeight = TableHeight + 2*BorderWidth
)

// Projection defaults. Overridable through config.
const (
	DefaultSpeedScale  = 400.0 // path length per unit of speed
	DefaultMaxBounces  = 5
	DefaultMaxVelocity = 10.0
)
