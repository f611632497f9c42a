package domain

import "testing"

func TestBandForBoundaries(t *testing.T) {
	cases := []struct {
		distance float64
		want     DistanceBand
	}{
		{0, BandNear},
		{8.3, BandNear},
		{10.0, BandNear},
		{10.0001, BandMid},
		{15, BandMid},
		{20.0, BandMid},
		{20.0001, BandFar},
		{25.0, BandFar},
		// Negative distances cannot occur but fall into the first band.
		{-1, BandNear},
	}

	for _, c := range cases {
		if got := BandFor(c.distance); got != c.want {
			t.Errorf("BandFor(%v) = %q, want %q", c.distance, got, c.want)
		}
	}
}

func TestBandColor(t *testing.T) {
	cases := []struct {
		band DistanceBand
		want string
	}{
		{BandNear, "green"},
		{BandMid, "orange"},
		{BandFar, "red"},
		{DistanceBand("5-15 km"), "gray"},
	}

	for _, c := range cases {
		if got := c.band.Color(); got != c.want {
			t.Errorf("Color(%q) = %q, want %q", c.band, got, c.want)
		}
	}
}

func TestParseBand(t *testing.T) {
	for _, b := range AllBands() {
		got, ok := ParseBand(string(b))
		if !ok || got != b {
			t.Errorf("ParseBand(%q) = %q, %v", b, got, ok)
		}
	}

	if _, ok := ParseBand("30+ km"); ok {
		t.Error("ParseBand accepted an unknown label")
	}
}
