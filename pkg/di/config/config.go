package config

import (
	"errors"
	"os"
	"strings"

	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	"github.com/lintang-b-s/places-heatmap/pkg/places"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Places       places.Config
	Center       geo.Coordinate
	OffsetRadius float64
	Workers      int
	OverlayDB    string
}

// New loads .env (when present) and config.yaml (when present) into viper, environment variables win.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var typeErr viper.ConfigFileNotFoundError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
	}

	SetDefaults()
	return Load()
}

func SetDefaults() {
	viper.SetDefault("PLACES_BASE_URL", places.DefaultBaseURL)
	viper.SetDefault("PLACES_SEARCH_RADIUS", places.DefaultSearchRadius)
	viper.SetDefault("PLACES_HTTP_TIMEOUT", places.DefaultTimeout)
	viper.SetDefault("PLACES_SENSOR", false)
	viper.SetDefault("MAP_CENTER_LAT", -33.873651)
	viper.SetDefault("MAP_CENTER_LON", 151.2058896)
	viper.SetDefault("OFFSET_RADIUS", 8000)
	viper.SetDefault("SESSION_WORKERS", 4)
	viper.SetDefault("OVERLAY_DB_PATH", "overlays.db")
}

// Load builds the Config from the values viper holds right now.
func Load() (*Config, error) {
	cfg := &Config{
		Places: places.Config{
			BaseURL:      viper.GetString("PLACES_BASE_URL"),
			APIKey:       viper.GetString("PLACES_API_KEY"),
			SearchRadius: viper.GetInt("PLACES_SEARCH_RADIUS"),
			Sensor:       viper.GetBool("PLACES_SENSOR"),
			Timeout:      viper.GetDuration("PLACES_HTTP_TIMEOUT"),
		},
		Center:       geo.NewCoordinate(viper.GetFloat64("MAP_CENTER_LAT"), viper.GetFloat64("MAP_CENTER_LON")),
		OffsetRadius: viper.GetFloat64("OFFSET_RADIUS"),
		Workers:      viper.GetInt("SESSION_WORKERS"),
		OverlayDB:    viper.GetString("OVERLAY_DB_PATH"),
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if err := c.Center.Validate(); err != nil {
		return err
	}
	if c.OffsetRadius < 0 {
		return errors.New("OFFSET_RADIUS must not be negative")
	}
	if c.Places.SearchRadius <= 0 {
		return errors.New("PLACES_SEARCH_RADIUS must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("SESSION_WORKERS must be positive")
	}
	return nil
}
