package geo

import (
	"errors"
	"math"
	"strings"

	"school-map-service/internal/domain"
)

var ErrTruncatedPolyline = errors.New("truncated polyline")

// DecodePolyline decodes a Google-format encoded polyline (1e-5 precision)
// into an ordered sequence of lat/lon points. OpenRouteService returns route
// geometry in this encoding.
func DecodePolyline(encoded string) ([]domain.Coordinates, error) {
	var points []domain.Coordinates
	index, lat, lon := 0, 0, 0

	readDelta := func() (int, error) {
		shift, result := 0, 0
		for {
			if index >= len(encoded) {
				return 0, ErrTruncatedPolyline
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			return ^(result >> 1), nil
		}
		return result >> 1, nil
	}

	for index < len(encoded) {
		dLat, err := readDelta()
		if err != nil {
			return nil, err
		}
		dLon, err := readDelta()
		if err != nil {
			return nil, err
		}

		lat += dLat
		lon += dLon

		points = append(points, domain.Coordinates{
			Lat: float64(lat) / 1e5,
			Lon: float64(lon) / 1e5,
		})
	}

	return points, nil
}

// EncodePolyline is the inverse of DecodePolyline. The route cache stores
// geometry in encoded form and round-trips it through these two functions.
func EncodePolyline(points []domain.Coordinates) string {
	var encoded strings.Builder
	prevLat, prevLon := 0, 0

	for _, p := range points {
		lat := int(math.Round(p.Lat * 1e5))
		lon := int(math.Round(p.Lon * 1e5))

		encodeDelta(&encoded, lat-prevLat)
		encodeDelta(&encoded, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return encoded.String()
}

func encodeDelta(buf *strings.Builder, delta int) {
	if delta < 0 {
		delta = ^(delta << 1)
	} else {
		delta <<= 1
	}

	for delta >= 0x20 {
		buf.WriteByte(byte((delta&0x1f)|0x20) + 63)
		delta >>= 5
	}
	buf.WriteByte(byte(delta) + 63)
}
