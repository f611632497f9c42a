package geo

import (
	"errors"
	"math"
	"testing"

	"school-map-service/internal/domain"
)

func TestDecodePolyline(t *testing.T) {
	// Reference example from the polyline algorithm documentation.
	points, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Coordinates{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}

	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d", len(points), len(want))
	}
	for i := range want {
		if math.Abs(points[i].Lat-want[i].Lat) > 1e-5 || math.Abs(points[i].Lon-want[i].Lon) > 1e-5 {
			t.Fatalf("point %d = %v, want %v", i, points[i], want[i])
		}
	}
}

func TestDecodePolylineEmpty(t *testing.T) {
	points, err := DecodePolyline("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("got %d points, want 0", len(points))
	}
}

func TestDecodePolylineTruncated(t *testing.T) {
	_, err := DecodePolyline("_p~iF")
	if !errors.Is(err, ErrTruncatedPolyline) {
		t.Fatalf("err = %v, want ErrTruncatedPolyline", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 45.46421, Lon: 9.19},
		{Lat: 45.58451, Lon: 9.27443},
		{Lat: 45.6, Lon: 9.3},
	}

	decoded, err := DecodePolyline(EncodePolyline(points))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decoded) != len(points) {
		t.Fatalf("got %d points, want %d", len(decoded), len(points))
	}
	for i := range points {
		if math.Abs(decoded[i].Lat-points[i].Lat) > 1e-5 || math.Abs(decoded[i].Lon-points[i].Lon) > 1e-5 {
			t.Fatalf("point %d = %v, want %v", i, decoded[i], points[i])
		}
	}
}
