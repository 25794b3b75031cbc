package core

import (
	"fmt"
	"math"
)

// goldenAngle is the rotation between consecutive dots, π(3−√5) radians.
// An irrational fraction of the circle never repeats, so dots on nearby
// spiral turns do not line up into visible seams.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// GenerateSpiralPoints spreads n dots over a sphere of the given radius
// with a golden-angle spiral: dot heights step linearly from the north pole
// to the south pole while the azimuth advances by the golden angle each
// step, which keeps density asymptotically uniform per unit area. The
// output is deterministic: identical n and radius produce bit-identical
// positions.
func GenerateSpiralPoints(n int, radius float64) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: dot count %d, need at least 2", ErrInvalidArgument, n)
	}
	if radius <= 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: radius %v, need a positive finite value", ErrInvalidArgument, radius)
	}

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		yNorm := 1 - float64(i)/float64(n-1)*2
		radial := math.Sqrt(math.Max(0, 1-yNorm*yNorm))
		theta := goldenAngle * float64(i)
		x := math.Cos(theta) * radial
		z := math.Sin(theta) * radial
		lat, lon := ToLatLon(x, yNorm, z)
		points[i] = Point{
			Index: i,
			X:     x * radius,
			Y:     yNorm * radius,
			Z:     z * radius,
			Lat:   lat,
			Lon:   lon,
		}
	}
	return points, nil
}
