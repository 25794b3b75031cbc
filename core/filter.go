package core

import "fmt"

// FilterLand keeps the dots whose raster sample is strictly brighter than
// threshold. Samples exactly at the threshold are excluded; coastline
// renders depend on that edge staying put. The result is an order-preserving
// subsequence of the input, each survivor keeping its generator index, and
// the function is pure: rerunning it over the same inputs reproduces the
// same retained set.
func FilterLand(points []Point, raster *LandRaster, threshold uint8) ([]Point, error) {
	if raster == nil {
		return nil, fmt.Errorf("%w: nil land raster", ErrInvalidArgument)
	}
	if raster.Width <= 0 || raster.Height <= 0 {
		return nil, fmt.Errorf("%w: raster dimensions %dx%d, need positive width and height", ErrInvalidArgument, raster.Width, raster.Height)
	}

	retained := make([]Point, 0, len(points))
	for _, p := range points {
		if raster.SampleLatLon(p.Lat, p.Lon) > threshold {
			retained = append(retained, p)
		}
	}
	return retained, nil
}
