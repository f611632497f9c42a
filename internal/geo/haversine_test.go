package geo

import (
	"math"
	"testing"

	"school-map-service/internal/domain"
)

func TestDistanceKmIdenticalPoints(t *testing.T) {
	p := domain.Coordinates{Lat: 45.4642, Lon: 9.19}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := domain.Coordinates{Lat: 45.4642, Lon: 9.19}
	b := domain.Coordinates{Lat: 45.5845, Lon: 9.2744}

	ab := DistanceKm(a, b)
	ba := DistanceKm(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceKmOneDegreeLatitude(t *testing.T) {
	// One degree of latitude along a meridian is R*pi/180 km.
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 1, Lon: 0}

	want := earthRadiusKm * math.Pi / 180
	got := DistanceKm(a, b)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
}

func TestDistanceKmNonNegative(t *testing.T) {
	pairs := []struct{ a, b domain.Coordinates }{
		{domain.Coordinates{Lat: -90, Lon: -180}, domain.Coordinates{Lat: 90, Lon: 180}},
		{domain.Coordinates{Lat: 45.5, Lon: 9.2}, domain.Coordinates{Lat: 45.5, Lon: 9.2}},
		{domain.Coordinates{Lat: 10, Lon: 20}, domain.Coordinates{Lat: -10, Lon: -20}},
	}

	for _, p := range pairs {
		if d := DistanceKm(p.a, p.b); d < 0 {
			t.Fatalf("distance %v -> %v is negative: %v", p.a, p.b, d)
		}
	}
}
