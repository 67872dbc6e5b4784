// Package geo computes great-circle distances between coordinate pairs.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const earthRadiusKm = 6371

var ErrInvalidCoordinate = errors.New("coordinate out of range")

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %f: %w", p.Latitude, ErrInvalidCoordinate)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %f: %w", p.Longitude, ErrInvalidCoordinate)
	}
	return nil
}

// Distance returns the haversine distance between a and b in kilometers.
// No rounding is applied; formatting is a display concern.
func Distance(a, b Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h)), nil
}
