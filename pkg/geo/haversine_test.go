package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name             string
		lat1, lon1       float64
		lat2, lon2       float64
		wantMeters       float64
		tolerancePercent float64
	}{
		{
			name: "Geneva to Zurich",
			lat1: 46.2044, lon1: 6.1432,
			lat2: 47.3769, lon2: 8.5417,
			wantMeters:       224_000, // ~224 km great-circle
			tolerancePercent: 1,
		},
		{
			name: "Same point",
			lat1: 46.5178, lon1: 6.5673,
			lat2: 46.5178, lon2: 6.5673,
			wantMeters:       0,
			tolerancePercent: 0,
		},
		{
			name: "Short distance (~100m)",
			lat1: 46.5178, lon1: 6.5673,
			lat2: 46.5187, lon2: 6.5673,
			wantMeters:       100,
			tolerancePercent: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if tt.wantMeters == 0 {
				if got != 0 {
					t.Errorf("expected 0, got %f", got)
				}
				return
			}
			diff := math.Abs(got-tt.wantMeters) / tt.wantMeters * 100
			if diff > tt.tolerancePercent {
				t.Errorf("Haversine = %f m, want ~%f m (diff %.1f%%)", got, tt.wantMeters, diff)
			}
		})
	}
}

func TestGreatCircleDistanceTo(t *testing.T) {
	// EPFL to Lausanne cathedral, and EPFL to Zurich HB.
	epfl := PointCh{E: 2_533_132, N: 1_152_206}
	for _, that := range []PointCh{{E: 2_538_300, N: 1_152_900}, {E: 2_683_180, N: 1_248_090}} {
		planar, sphere := epfl.DistanceTo(that), epfl.GreatCircleDistanceTo(that)
		if diffPercent := math.Abs(planar-sphere) / planar * 100; diffPercent > 0.5 {
			t.Errorf("planar %f m and great-circle %f m differ by %.2f%%", planar, sphere, diffPercent)
		}
	}
}

func BenchmarkHaversine(b *testing.B) {
	for b.Loop() {
		Haversine(46.2044, 6.1432, 47.3769, 8.5417)
	}
}
