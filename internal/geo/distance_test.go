package geo

import (
	"math"
	"testing"
)

func TestHaversine_KnownDistances(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantMeters             float64
		tolerance              float64 // allowed error in meters
	}{
		{
			name: "Tokyo Station to Kyoto Station (~372 km)",
			lat1: 35.6812, lng1: 139.7671,
			lat2: 34.9858, lng2: 135.7588,
			wantMeters: 371_600,
			tolerance:  500,
		},
		{
			name: "Shinjuku to Shibuya (~3.5 km)",
			lat1: 35.6896, lng1: 139.7006,
			lat2: 35.6580, lng2: 139.7016,
			wantMeters: 3_515,
			tolerance:  25,
		},
		{
			name: "same point returns zero",
			lat1: 35.6812, lng1: 139.7671,
			lat2: 35.6812, lng2: 139.7671,
			wantMeters: 0,
			tolerance:  0.001,
		},
		{
			name: "north pole to south pole",
			lat1: 90, lng1: 0,
			lat2: -90, lng2: 0,
			wantMeters: math.Pi * earthRadiusMeters,
			tolerance:  1,
		},
		{
			name: "equator quarter circumference",
			lat1: 0, lng1: 0,
			lat2: 0, lng2: 90,
			wantMeters: math.Pi / 2 * earthRadiusMeters,
			tolerance:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantMeters) > tt.tolerance {
				t.Errorf("Haversine() = %.1f m, want %.1f m (±%.0f)", got, tt.wantMeters, tt.tolerance)
			}
		})
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	a := Haversine(35.6812, 139.7671, 34.9858, 135.7588)
	b := Haversine(34.9858, 135.7588, 35.6812, 139.7671)
	if a != b {
		t.Errorf("Haversine not symmetric: %f != %f", a, b)
	}
}

func TestHaversine_NaNPropagates(t *testing.T) {
	got := Haversine(math.NaN(), 139.0, 35.0, 139.0)
	if !math.IsNaN(got) {
		t.Errorf("Haversine with NaN input = %f, want NaN", got)
	}
}
