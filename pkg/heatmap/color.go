package heatmap

import "fmt"

// Color is an opaque rgb color.
type Color struct {
	R uint8 `json:"r" msgpack:"r"`
	G uint8 `json:"g" msgpack:"g"`
	B uint8 `json:"b" msgpack:"b"`
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ARGB packs the color with full alpha the way android colors are stored.
func (c Color) ARGB() uint32 {
	return 0xff<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Palette is the ordered list of overlay colors. its length caps how many overlays a session can show.
type Palette []Color

var DefaultPalette = Palette{
	RGB(238, 44, 44),   // red
	RGB(60, 80, 255),   // blue
	RGB(20, 170, 50),   // green
	RGB(255, 80, 255),  // pink
	RGB(100, 100, 100), // grey
}

func (p Palette) Size() int {
	return len(p)
}

// NextFree returns the index of the first color not in used, or -1 if every color is taken.
func (p Palette) NextFree(used map[int]bool) int {
	for i := range p {
		if !used[i] {
			return i
		}
	}
	return -1
}
