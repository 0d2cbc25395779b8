package places

import (
	"errors"
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg/geo"
)

const (
	DefaultBaseURL      = "https://maps.googleapis.com/maps/api/place"
	DefaultSearchRadius = 5000
	DefaultTimeout      = 30 * time.Second

	radarSearchPath = "/radarsearch"
	outJSON         = "/json"
)

var (
	ErrMalformedRequest = errors.New("error processing places api url")
	ErrCannotConnect    = errors.New("error connecting to places api")
	ErrCannotProcess    = errors.New("cannot process json results")
)

// SearchRequest is one radar search around Center. built per sub-query and thrown away afterwards.
type SearchRequest struct {
	Center  geo.Coordinate
	Radius  int // meters
	Keyword string
}

type Config struct {
	BaseURL      string
	APIKey       string
	SearchRadius int // meters, radius sent with every radar search
	Sensor       bool
	Timeout      time.Duration
}

// only results[].id and results[].geometry.location are read. pointers so missing fields can be told apart
// from zero values.
type radarSearchResponse struct {
	Results *[]radarSearchResult `json:"results"`
}

type radarSearchResult struct {
	ID       *string `json:"id"`
	Geometry *struct {
		Location *struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
