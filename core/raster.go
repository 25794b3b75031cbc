package core

import "fmt"

// LandRaster is an immutable equirectangular brightness grid covering the
// full globe: row 0 is the north pole, column 0 is longitude 180°W. Bright
// samples are land, dark samples are ocean. The core never decodes image
// files; the asset layer hands it already-decoded samples.
type LandRaster struct {
	Width   int
	Height  int
	samples []uint8 // row-major, Width*Height entries
}

// NewLandRaster wraps decoded brightness samples. The sample slice is
// retained, not copied; callers must not mutate it afterwards.
func NewLandRaster(width, height int, samples []uint8) (*LandRaster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: raster dimensions %dx%d, need positive width and height", ErrInvalidArgument, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: raster has %d samples, %dx%d needs %d", ErrInvalidArgument, len(samples), width, height, width*height)
	}
	return &LandRaster{Width: width, Height: height, samples: samples}, nil
}

// At returns the brightness sample at pixel (px, py). Both coordinates must
// be in range; UVToPixel output always is.
func (r *LandRaster) At(px, py int) uint8 {
	return r.samples[py*r.Width+px]
}

// SampleLatLon maps geographic degrees onto the raster and returns the
// brightness there.
func (r *LandRaster) SampleLatLon(lat, lon float64) uint8 {
	u, v := ToUV(lat, lon)
	px, py := UVToPixel(u, v, r.Width, r.Height)
	return r.At(px, py)
}
