package geocode

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

const (
	AddressNotFound = "Address not found"
	unknownCity     = "Unknown City"
)

// reverseGeocoder is the part of *maps.Client used here.
type reverseGeocoder interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Geocoder turns coordinates into a short street address.
type Geocoder struct {
	client reverseGeocoder
	logger *zap.Logger
}

// NewGeocoder creates a Google Maps backed geocoder.
func NewGeocoder(apiKey string, logger *zap.Logger) (*Geocoder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client, logger: logger}, nil
}

// ReverseGeocode returns "road, suburb, city", "suburb, city" or "city",
// whichever is the most specific available. Any failure yields AddressNotFound.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: lat, Lng: lon},
		Language: "en",
	})
	if err != nil {
		g.logger.Warn("Reverse geocoding failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return AddressNotFound
	}
	if len(results) == 0 {
		return AddressNotFound
	}
	return FormatAddress(results[0].AddressComponents)
}

// FormatAddress builds the display address from geocoder components.
func FormatAddress(components []maps.AddressComponent) string {
	road := firstOfType(components, "route")
	suburb := firstOfType(components, "sublocality", "sublocality_level_1", "neighborhood")
	city := firstOfType(components, "locality", "postal_town", "administrative_area_level_3", "administrative_area_level_2")
	if city == "" {
		city = unknownCity
	}

	if road != "" && suburb != "" {
		return fmt.Sprintf("%s, %s, %s", road, suburb, city)
	}
	if suburb != "" {
		return fmt.Sprintf("%s, %s", suburb, city)
	}
	return city
}

// firstOfType returns the long name of the first component matching the
// earliest type in types.
func firstOfType(components []maps.AddressComponent, types ...string) string {
	for _, want := range types {
		for _, c := range components {
			for _, t := range c.Types {
				if t == want {
					return c.LongName
				}
			}
		}
	}
	return ""
}
