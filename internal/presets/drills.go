package presets

import "github.com/threecushion/backend/internal/game"

// Drill is a built-in preset seeded into new databases.
type Drill struct {
	Name        string
	Description string
	Tags        []string
	Balls       []game.Ball
}

// Layout builds the drill's layout on top of the starting spots.
func (d Drill) Layout() (game.Layout, error) {
	layout := game.InitialLayout()
	for _, b := range d.Balls {
		var err error
		layout, err = layout.Replace(b)
		if err != nil {
			return game.Layout{}, err
		}
	}
	return layout, nil
}

// Drills lists the classic three-cushion practice positions.
func Drills() []Drill {
	return []Drill{
		{
			Name:        "break",
			Description: "Opening shot: white struck toward the red on the foot spot.",
			Tags:        []string{"opening"},
			Balls: []game.Ball{
				{Color: game.White, X: 200, Y: 240, VX: 6, VY: -3},
				{Color: game.Yellow, X: 200, Y: 200},
				{Color: game.Red, X: 600, Y: 200},
			},
		},
		{
			Name:        "corner-to-corner",
			Description: "Diagonal drive that returns through the opposite corner.",
			Tags:        []string{"diagonal", "corner"},
			Balls: []game.Ball{
				{Color: game.White, X: 0, Y: 0, VX: 8, VY: 4},
			},
		},
		{
			Name:        "long-rail",
			Description: "Straight run along the long axis, rebounding off both short rails.",
			Tags:        []string{"straight"},
			Balls: []game.Ball{
				{Color: game.Yellow, X: 100, Y: 200, VX: 10},
			},
		},
		{
			Name:        "around-the-table",
			Description: "Shallow angle that touches all four rails.",
			Tags:        []string{"diagonal"},
			Balls: []game.Ball{
				{Color: game.Red, X: 650, Y: 120, VX: -7, VY: 5},
			},
		},
	}
}
