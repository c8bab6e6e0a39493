package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

type fakeMaps struct {
	results []maps.GeocodingResult
	err     error
}

func (f *fakeMaps) ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	return f.results, f.err
}

func component(name string, types ...string) maps.AddressComponent {
	return maps.AddressComponent{LongName: name, Types: types}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name       string
		components []maps.AddressComponent
		want       string
	}{
		{
			name: "road suburb city",
			components: []maps.AddressComponent{
				component("Mall Road", "route"),
				component("Gulberg", "sublocality_level_1", "sublocality", "political"),
				component("Lahore", "locality", "political"),
			},
			want: "Mall Road, Gulberg, Lahore",
		},
		{
			name: "suburb city",
			components: []maps.AddressComponent{
				component("Saddar", "neighborhood"),
				component("Karachi", "locality"),
			},
			want: "Saddar, Karachi",
		},
		{
			name: "road without suburb falls to city",
			components: []maps.AddressComponent{
				component("GT Road", "route"),
				component("Rawalpindi", "locality"),
			},
			want: "Rawalpindi",
		},
		{
			name:       "nothing known",
			components: nil,
			want:       "Unknown City",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.components))
		})
	}
}

func TestReverseGeocode_Fallbacks(t *testing.T) {
	g := &Geocoder{client: &fakeMaps{err: errors.New("quota")}, logger: zap.NewNop()}
	assert.Equal(t, AddressNotFound, g.ReverseGeocode(context.Background(), 31.5, 74.3))

	g = &Geocoder{client: &fakeMaps{}, logger: zap.NewNop()}
	assert.Equal(t, AddressNotFound, g.ReverseGeocode(context.Background(), 31.5, 74.3))

	g = &Geocoder{client: &fakeMaps{results: []maps.GeocodingResult{{
		AddressComponents: []maps.AddressComponent{component("Lahore", "locality")},
	}}}, logger: zap.NewNop()}
	assert.Equal(t, "Lahore", g.ReverseGeocode(context.Background(), 31.5, 74.3))
}
