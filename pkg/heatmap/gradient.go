package heatmap

import (
	"github.com/lintang-b-s/places-heatmap/pkg"
)

// Gradient maps heat intensity to color. StartPoints[i] is the intensity in (0, 1] where Colors[i] starts.
type Gradient struct {
	Colors      []Color   `json:"colors" msgpack:"colors"`
	StartPoints []float32 `json:"start_points" msgpack:"start_points"`
}

func NewGradient(colors []Color, startPoints []float32) (Gradient, error) {
	if len(colors) == 0 {
		return Gradient{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "gradient needs at least one color")
	}
	if len(colors) != len(startPoints) {
		return Gradient{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "gradient has %d colors but %d start points",
			len(colors), len(startPoints))
	}
	for i, sp := range startPoints {
		if sp <= 0 || sp > 1 {
			return Gradient{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "start point %v not in (0, 1]", sp)
		}
		if i > 0 && sp <= startPoints[i-1] {
			return Gradient{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "start points must be strictly increasing")
		}
	}
	return Gradient{Colors: colors, StartPoints: startPoints}, nil
}

// MakeGradient returns a gradient made only of c: the heatmap fades in by opacity alone.
func MakeGradient(c Color) Gradient {
	return Gradient{
		Colors:      []Color{c},
		StartPoints: []float32{1.0},
	}
}
