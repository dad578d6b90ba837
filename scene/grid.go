package scene

import "map-editor/math"

const (
	MaxBinaryPower  = 9 // 512
	MaxDecimalPower = 5 // 500

	// maxGridLines caps how many lines SpacingFor allows across a view.
	maxGridLines = 200
)

var decimalSpacing = [MaxDecimalPower + 1]int{1, 5, 10, 50, 100, 500}

// Grid is the editor snapping grid. Binary grids step in powers of two,
// decimal grids step through 1, 5, 10, 50, 100, 500.
type Grid struct {
	Enabled bool
	Binary  bool
	Power   int
}

func NewGrid(binary bool, power int) Grid {
	g := Grid{Enabled: true, Binary: binary}
	g.Power = math.Clamp(power, 0, g.MaxPower())
	return g
}

func (g Grid) MaxPower() int {
	if g.Binary {
		return MaxBinaryPower
	}
	return MaxDecimalPower
}

// Spacing is always positive.
func (g Grid) Spacing() float32 {
	return float32(g.spacingAt(g.Power))
}

// SpacingFor coarsens the spacing until a view of the given world width
// holds at most maxGridLines lines.
func (g Grid) SpacingFor(width float32) float32 {
	pwr := math.Clamp(g.Power, 0, g.MaxPower())
	spacing := g.spacingAt(pwr)
	for pwr < g.MaxPower() && width/float32(spacing) > maxGridLines {
		pwr++
		spacing = g.spacingAt(pwr)
	}
	return float32(spacing)
}

func (g Grid) spacingAt(pwr int) int {
	pwr = math.Clamp(pwr, 0, g.MaxPower())
	if g.Binary {
		return 1 << pwr
	}
	return decimalSpacing[pwr]
}

func (g *Grid) IncreasePower() {
	g.Power = math.Clamp(g.Power+1, 0, g.MaxPower())
}

func (g *Grid) DecreasePower() {
	g.Power = math.Clamp(g.Power-1, 0, g.MaxPower())
}

// ToggleType switches between binary and decimal, keeping the closest
// spacing.
func (g *Grid) ToggleType() {
	if g.Binary {
		g.Power = [...]int{0, 0, 1, 2, 2, 3, 3, 4, 4, 5}[math.Clamp(g.Power, 0, MaxBinaryPower)]
	} else {
		g.Power = [...]int{0, 2, 3, 6, 7, 9}[math.Clamp(g.Power, 0, MaxDecimalPower)]
	}
	g.Binary = !g.Binary
}

// Lines lists the grid line coordinates inside [lo, hi] at the spacing a
// view of that width would draw.
func (g Grid) Lines(lo, hi float32) []float32 {
	if hi < lo {
		lo, hi = hi, lo
	}
	spacing := g.SpacingFor(hi - lo)
	first := float32(int(lo/spacing)) * spacing
	if first < lo {
		first += spacing
	}
	var lines []float32
	for x := first; x <= hi; x += spacing {
		lines = append(lines, x)
	}
	return lines
}
