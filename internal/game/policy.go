package game

// Policy holds the tunables shared by every projection and edit.
type Policy struct {
	SpeedScale  float64 `json:"speed_scale"`
	MaxBounces  int     `json:"max_bounces"`
	MaxVelocity float64 `json:"max_velocity"`
}

func DefaultPolicy() Policy {
	return Policy{
		SpeedScale:  DefaultSpeedScale,
		MaxBounces:  DefaultMaxBounces,
		MaxVelocity: DefaultMaxVelocity,
	}
}

// Project projects b across the standard table.
func (p Policy) Project(b Ball) Trajectory {
	return NewTrajectory(b.Color, Project(b, TableWidth, TableHeight, p.SpeedScale, p.MaxBounces))
}
