package config

import (
	"testing"

	"github.com/lintang-b-s/places-heatmap/pkg/places"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, places.DefaultSearchRadius, cfg.Places.SearchRadius)
	assert.Equal(t, places.DefaultBaseURL, cfg.Places.BaseURL)
	assert.InDelta(t, -33.873651, cfg.Center.Lat, 1e-9)
	assert.InDelta(t, 151.2058896, cfg.Center.Lon, 1e-9)
	assert.Equal(t, 8000.0, cfg.OffsetRadius)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value any
	}{
		{"latitude out of range", "MAP_CENTER_LAT", 91.0},
		{"negative offset", "OFFSET_RADIUS", -1},
		{"zero search radius", "PLACES_SEARCH_RADIUS", 0},
		{"no workers", "SESSION_WORKERS", 0},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			SetDefaults()
			viper.Set(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
