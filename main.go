package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"dotglobe/config"
	"dotglobe/core"
)

func main() {
	runtime.LockOSThread()

	// Parse command line flags
	var (
		settingsPath = flag.String("settings", "settings.json", "Path to settings file")
		dotCount     = flag.Int("dots", 0, "Dot count override (0 = settings value)")
		radius       = flag.Float64("radius", 0, "Sphere radius override (0 = settings value)")
		threshold    = flag.Int("threshold", -1, "Land brightness threshold override (-1 = settings value)")
		landPath     = flag.String("land", "", "Equirectangular land mask image (PNG/JPEG); empty = built-in mask")
		serve        = flag.Bool("serve", false, "Run the websocket state server instead of the viewer")
		addr         = flag.String("addr", "", "Server listen address override")
	)
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *dotCount > 0 {
		settings.Globe.DotCount = *dotCount
	}
	if *radius > 0 {
		settings.Globe.Radius = *radius
	}
	if *threshold >= 0 {
		settings.Globe.LandThreshold = *threshold
	}
	if *addr != "" {
		settings.Server.Addr = *addr
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	raster, err := resolveLandRaster(*landPath)
	if err != nil {
		log.Fatalf("Failed to load land mask: %v", err)
	}

	cfg, err := globeConfigFrom(settings.Globe)
	if err != nil {
		log.Fatalf("Invalid globe settings: %v", err)
	}
	globe, err := core.NewGlobe(cfg, raster)
	if err != nil {
		log.Fatalf("Failed to build globe: %v", err)
	}

	fmt.Println("=== Dot Globe ===")
	fmt.Printf("Land mask: %dx%d, threshold %d\n", raster.Width, raster.Height, cfg.Threshold)
	fmt.Printf("Dots: %d of %d over land (%.1f%%)\n",
		globe.DotCount(), cfg.DotCount,
		100*float64(globe.DotCount())/float64(cfg.DotCount))

	if *serve {
		if err := startServer(globe, settings.Server); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}
	runViewer(globe, settings.Viewer)
}

// globeConfigFrom narrows validated settings into the core's build value.
func globeConfigFrom(gs config.GlobeSettings) (core.GlobeConfig, error) {
	dr, dg, db, err := config.ParseHexColor(gs.DotColor)
	if err != nil {
		return core.GlobeConfig{}, err
	}
	ar, ag, ab, err := config.ParseHexColor(gs.ActiveColor)
	if err != nil {
		return core.GlobeConfig{}, err
	}
	return core.GlobeConfig{
		DotCount:     gs.DotCount,
		Radius:       gs.Radius,
		Threshold:    uint8(gs.LandThreshold),
		DefaultColor: core.RGB{R: dr, G: dg, B: db},
		ActiveColor:  core.RGB{R: ar, G: ag, B: ab},
	}, nil
}
