package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"dotglobe/core"
)

// resolveLandRaster returns the decoded mask at path, or the built-in
// synthetic mask when no path is given. Image decoding lives out here in
// the asset layer; the core only ever sees brightness samples.
func resolveLandRaster(path string) (*core.LandRaster, error) {
	if path == "" {
		fmt.Println("No land mask given, using built-in synthetic continents")
		return syntheticLandRaster(720, 360)
	}
	return loadLandRaster(path)
}

// loadLandRaster decodes an equirectangular land-mask image into a
// brightness grid: land pixels bright, ocean pixels dark.
func loadLandRaster(path string) (*core.LandRaster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	samples := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Rec. 601 luma over 16-bit channels, scaled back to 8 bits.
			lum := (299*r + 587*g + 114*b) / 1000
			samples[y*w+x] = uint8(lum >> 8)
		}
	}
	return core.NewLandRaster(w, h, samples)
}

// syntheticLandRaster builds a coarse stand-in mask from a handful of
// spherical caps, one per rough continent, so the viewer runs without any
// asset on disk.
func syntheticLandRaster(width, height int) (*core.LandRaster, error) {
	caps := []struct {
		lat, lon float64
		angleDeg float64
	}{
		{48, -100, 28}, // North America
		{-14, -58, 22}, // South America
		{8, 22, 30},    // Africa
		{52, 70, 34},   // Eurasia
		{-25, 134, 16}, // Australia
	}

	samples := make([]uint8, width*height)
	for py := 0; py < height; py++ {
		lat := 90 - (float64(py)+0.5)*180/float64(height)
		for px := 0; px < width; px++ {
			lon := (float64(px)+0.5)*360/float64(width) - 180
			x, y, z := core.LatLonToCartesian(lat, lon, 1)
			for _, c := range caps {
				cx, cy, cz := core.LatLonToCartesian(c.lat, c.lon, 1)
				cosAngle := x*cx + y*cy + z*cz
				if cosAngle >= math.Cos(c.angleDeg*math.Pi/180) {
					samples[py*width+px] = 255
					break
				}
			}
		}
	}
	return core.NewLandRaster(width, height, samples)
}
