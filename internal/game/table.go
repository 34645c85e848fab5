package game

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Diamond is a sight marker on the rail, in canvas coordinates.
type Diamond struct {
	Rail     string `json:"rail"` // "top", "bottom", "left", "right"
	Index    int    `json:"index"`
	Position Vec2   `json:"position"`
}

// Table holds the drawable table geometry.
type Table struct {
	Rail     Rect      `json:"rail"`
	Cushion  Rect      `json:"cushion"`
	Cloth    Rect      `json:"cloth"`
	Diamonds []Diamond `json:"diamonds"`
}

// NewStandardTable builds the frame and diamond layout around the cloth.
// The long rails carry 9 diamonds (eighths of the length), the short rails 5
// (quarters of the width).
func NewStandardTable() *Table {
	w, h := TableWidth, TableHeight
	b, c := BorderWidth, CushionWidth

	diamonds := make([]Diamond, 0, 2*9+2*5)
	railNear := (b - c) / 2
	for i := 0; i < 9; i++ {
		x := b + float64(i)*w/8
		diamonds = append(diamonds,
			Diamond{Rail: "top", Index: i, Position: NewVec2(x, railNear)},
			Diamond{Rail: "bottom", Index: i, Position: NewVec2(x, h+1.5*b+c/2)},
		)
	}
	for i := 0; i < 5; i++ {
		y := b + float64(i)*h/4
		diamonds = append(diamonds,
			Diamond{Rail: "left", Index: i, Position: NewVec2(railNear, y)},
			Diamond{Rail: "right", Index: i, Position: NewVec2(w+1.5*b+c/2, y)},
		)
	}

	return &Table{
		Rail:     Rect{Name: "rail", X: 0, Y: 0, Width: CanvasWidth, Height: CanvasHeight},
		Cushion:  Rect{Name: "cushion", X: b - c, Y: b - c, Width: w + 2*c, Height: h + 2*c},
		Cloth:    Rect{Name: "cloth", X: b, Y: b, Width: w, Height: h},
		Diamonds: diamonds,
	}
}

// ToCanvas converts a table-local point to canvas coordinates.
func ToCanvas(p Vec2) Vec2 {
	return Vec2{X: p.X + BorderWidth, Y: p.Y + BorderWidth}
}

// DiamondOutline returns the four corners of a diamond marker centered on p.
func DiamondOutline(p Vec2) []Vec2 {
	half := DiamondSize / 2
	return []Vec2{
		{X: p.X, Y: p.Y - half},
		{X: p.X + half, Y: p.Y},
		{X: p.X, Y: p.Y + half},
		{X: p.X - half, Y: p.Y},
	}
}
