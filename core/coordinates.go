package core

import "math"

// Coordinate conventions, shared by every component that touches geometry:
// Y points at the north pole, X at the 0° meridian on the equator, Z at
// 90°E. Latitude and longitude are degrees. The land filter and the spatial
// index both go through these functions; nothing else in the repository
// re-derives this math.

// ToLatLon converts a unit-sphere Cartesian position to geographic degrees.
// The input must already lie on (or be normalized onto) the unit sphere;
// for a radius-r position divide the components by r first. Latitude is in
// [-90, 90] and longitude in (-180, 180].
func ToLatLon(x, y, z float64) (lat, lon float64) {
	// Guard asin against |y| drifting past 1 from rounding.
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	lat = math.Asin(y) * 180 / math.Pi
	lon = math.Atan2(z, x) * 180 / math.Pi
	if lon == -180 {
		lon = 180
	}
	return lat, lon
}

// LatLonToCartesian converts geographic degrees to a Cartesian position at
// the given radius. It is the exact inverse of ToLatLon away from the poles.
func LatLonToCartesian(lat, lon, radius float64) (x, y, z float64) {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	cosLat := math.Cos(latRad)
	x = radius * cosLat * math.Cos(lonRad)
	y = radius * math.Sin(latRad)
	z = radius * cosLat * math.Sin(lonRad)
	return x, y, z
}

// ToUV maps geographic degrees to normalized equirectangular raster
// coordinates in [0, 1]. v is flipped because raster row 0 is the north
// pole.
func ToUV(lat, lon float64) (u, v float64) {
	u = (lon + 180) / 360
	v = (90 - lat) / 180
	return u, v
}

// UVToPixel maps normalized raster coordinates to integer pixel indices.
// The clamp is mandatory: u=1 and v=1 are valid inputs that would otherwise
// index one past the last row or column.
func UVToPixel(u, v float64, width, height int) (px, py int) {
	px = clampInt(int(math.Floor(u*float64(width))), 0, width-1)
	py = clampInt(int(math.Floor(v*float64(height))), 0, height-1)
	return px, py
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
