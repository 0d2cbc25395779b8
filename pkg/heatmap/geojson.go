package heatmap

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the layer points as geojson, one point feature per place, with the keyword and the
// gradient color in the properties so a web map can draw its own heatmap layer.
func FeatureCollection(layer Layer, visible bool) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	colors := make([]string, 0, len(layer.Gradient.Colors))
	for _, c := range layer.Gradient.Colors {
		colors = append(colors, c.Hex())
	}

	for _, p := range layer.Points {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		f.Properties["keyword"] = layer.Keyword
		if len(colors) > 0 {
			f.Properties["color"] = colors[len(colors)-1]
		}
		fc.Append(f)
	}
	fc.ExtraMembers = geojson.Properties{
		"keyword":      layer.Keyword,
		"colors":       colors,
		"start_points": layer.Gradient.StartPoints,
		"visible":      visible,
	}
	return fc
}
