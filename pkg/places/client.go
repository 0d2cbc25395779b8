package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lintang-b-s/places-heatmap/pkg/datastructure"
	"github.com/lintang-b-s/places-heatmap/pkg/geo"

	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues radar search requests against the places api.
type Client struct {
	cfg        Config
	httpClient HTTPClient
	log        *zap.Logger
}

func NewClient(cfg Config, httpClient HTTPClient, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SearchRadius <= 0 {
		cfg.SearchRadius = DefaultSearchRadius
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
		if cfg.Timeout > 0 {
			httpClient = &http.Client{Timeout: cfg.Timeout}
		}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
	}
}

// SearchRadius is the radius sent with every request, independent of how far apart the sub-query centers are.
func (c *Client) SearchRadius() int {
	return c.cfg.SearchRadius
}

// NewSearchRequest builds the request for one sub-query around center.
func (c *Client) NewSearchRequest(keyword string, center geo.Coordinate) SearchRequest {
	return SearchRequest{
		Center:  center,
		Radius:  c.cfg.SearchRadius,
		Keyword: keyword,
	}
}

// EscapeKeyword query-escapes keyword with spaces as %20.
func EscapeKeyword(keyword string) string {
	return strings.ReplaceAll(url.QueryEscape(keyword), "+", "%20")
}

// BuildURL returns the radar search url for req.
// {base}/radarsearch/json?location=lat,lng&radius=r&sensor=false&key=k&keyword=kw
func (c *Client) BuildURL(req SearchRequest) string {
	var sb strings.Builder
	sb.WriteString(c.cfg.BaseURL + radarSearchPath + outJSON)
	sb.WriteString("?location=" + formatFloat(req.Center.Lat) + "," + formatFloat(req.Center.Lon))
	sb.WriteString("&radius=" + strconv.Itoa(req.Radius))
	sb.WriteString("&sensor=" + strconv.FormatBool(c.cfg.Sensor))
	sb.WriteString("&key=" + url.QueryEscape(c.cfg.APIKey))
	sb.WriteString("&keyword=" + EscapeKeyword(req.Keyword))
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RadarSearch runs one sub-query. errors wrap ErrMalformedRequest, ErrCannotConnect or ErrCannotProcess.
func (c *Client) RadarSearch(ctx context.Context, req SearchRequest) ([]datastructure.PlaceResult, error) {
	rawURL := c.BuildURL(req)
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotConnect, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: places api returned status %d", ErrCannotConnect, resp.StatusCode)
	}

	results, err := ParseResults(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debug("radar search done", zap.String("keyword", req.Keyword),
		zap.Float64("lat", req.Center.Lat), zap.Float64("lon", req.Center.Lon), zap.Int("results", len(results)))
	return results, nil
}

// ParseResults reads a radar search response body. either every entry is returned or an error wrapping
// ErrCannotProcess, never a partial list.
func ParseResults(r io.Reader) ([]datastructure.PlaceResult, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotConnect, err)
	}

	var resp radarSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotProcess, err)
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: response has no results list", ErrCannotProcess)
	}

	results := make([]datastructure.PlaceResult, 0, len(*resp.Results))
	for i, r := range *resp.Results {
		if r.ID == nil {
			return nil, fmt.Errorf("%w: result %d has no id", ErrCannotProcess, i)
		}
		if r.Geometry == nil || r.Geometry.Location == nil || r.Geometry.Location.Lat == nil || r.Geometry.Location.Lng == nil {
			return nil, fmt.Errorf("%w: result %d (%s) has no geometry.location", ErrCannotProcess, i, *r.ID)
		}
		results = append(results, datastructure.NewPlaceResult(*r.ID, *r.Geometry.Location.Lat, *r.Geometry.Location.Lng))
	}
	return results, nil
}
