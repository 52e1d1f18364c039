package chaos

import "math"

const eps = 1e-10

type variation func(x, y float64) (float64, float64)

var variations = map[string]variation{
	"linear": func(x, y float64) (float64, float64) {
		return x, y
	},
	"sinusoidal": func(x, y float64) (float64, float64) {
		return math.Sin(x), math.Sin(y)
	},
	"spherical": func(x, y float64) (float64, float64) {
		r2 := x*x + y*y + eps
		return x / r2, y / r2
	},
	"swirl": func(x, y float64) (float64, float64) {
		s, c := math.Sincos(x*x + y*y)
		return x*s - y*c, x*c + y*s
	},
	"horseshoe": func(x, y float64) (float64, float64) {
		r := math.Sqrt(x*x+y*y) + eps
		return (x - y) * (x + y) / r, 2 * x * y / r
	},
	"polar": func(x, y float64) (float64, float64) {
		return math.Atan2(x, y) / math.Pi, math.Sqrt(x*x+y*y) - 1
	},
}

// Supported reports whether the backend knows variation name. Unknown
// variations contribute nothing to the sum.
func Supported(name string) bool {
	_, ok := variations[name]
	return ok
}
