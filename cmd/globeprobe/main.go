package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"dotglobe/core"
)

// globeprobe resolves lat,lon queries against a freshly built dot globe,
// for eyeballing the spiral and the nearest-dot lookup without a window.
// The land mask is all-land so every generated dot is searchable.
func main() {
	var (
		dots   = flag.Int("dots", 20000, "Dot count")
		radius = flag.Float64("radius", 1.0, "Sphere radius")
	)
	flag.Parse()

	raster, err := core.NewLandRaster(2, 1, []uint8{255, 255})
	if err != nil {
		log.Fatalf("Failed to build raster: %v", err)
	}
	globe, err := core.NewGlobe(core.GlobeConfig{
		DotCount: *dots,
		Radius:   *radius,
	}, raster)
	if err != nil {
		log.Fatalf("Failed to build globe: %v", err)
	}

	queries := flag.Args()
	if len(queries) == 0 {
		queries = []string{"90,0", "-90,0", "0,0", "40.7128,-74.0060", "-33.8688,151.2093"}
	}

	fmt.Printf("=== Dot Globe Probe (%d dots, radius %g) ===\n\n", *dots, *radius)
	for _, q := range queries {
		lat, lon, err := parseQuery(q)
		if err != nil {
			log.Fatalf("Bad query %q: %v", q, err)
		}
		idx, err := globe.Nearest(lat, lon)
		if err != nil {
			log.Fatalf("Lookup (%g, %g) failed: %v", lat, lon, err)
		}
		p := globe.Points()[idx]
		fmt.Printf("query (%9.4f, %9.4f) -> dot %d (generator %d)\n", lat, lon, idx, p.Index)
		fmt.Printf("  at (%9.4f, %9.4f), position (%.4f, %.4f, %.4f)\n\n", p.Lat, p.Lon, p.X, p.Y, p.Z)
	}
}

func parseQuery(s string) (lat, lon float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("need lat,lon")
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
