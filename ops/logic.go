package ops

import "math"

var (
	_ LogicOps = Zadeh{}
	_ LogicOps = Product{}
	_ LogicOps = Lukasiewicz{}
)

// Zadeh is the min/max/complement logic.
type Zadeh struct{}

func (Zadeh) And(a, b float64) float64 { return math.Min(a, b) }
func (Zadeh) Or(a, b float64) float64  { return math.Max(a, b) }
func (Zadeh) Not(a float64) float64    { return 1 - a }

// Product uses the algebraic product and probabilistic sum.
type Product struct{}

func (Product) And(a, b float64) float64 { return a * b }
func (Product) Or(a, b float64) float64  { return a + b - a*b }
func (Product) Not(a float64) float64    { return 1 - a }

// Lukasiewicz uses the bounded difference and bounded sum.
type Lukasiewicz struct{}

func (Lukasiewicz) And(a, b float64) float64 { return math.Max(0, a+b-1) }
func (Lukasiewicz) Or(a, b float64) float64  { return math.Min(1, a+b) }
func (Lukasiewicz) Not(a float64) float64    { return 1 - a }
