// Package geocode talks to a Nominatim-compatible geocoding service.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Candidate is one geocoder match. The service orders candidates by
// confidence, so callers take the first.
type Candidate struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

type Client interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

type client struct {
	http    *resty.Client
	baseURL string
}

// NewClient builds a geocoding client with a bounded request timeout. The
// upstream is a shared public service; the timeout keeps a slow geocoder
// from stalling discovery or order creation.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
	}
}

// nominatim returns coordinates as JSON strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *client) Search(ctx context.Context, query string) ([]Candidate, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      query,
			"format": "json",
			"limit":  "5",
		}).
		Get(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("geocoder status: %d", resp.StatusCode())
	}

	var results []searchResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("geocoder response: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, result := range results {
		lat, err := strconv.ParseFloat(result.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(result.Lon, 64)
		if err != nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Latitude:    lat,
			Longitude:   lon,
			DisplayName: result.DisplayName,
		})
	}
	return candidates, nil
}
